package combat

// MeleeDamage is the damage of a server-resolved melee swing.
const MeleeDamage int32 = 25

// MinReportedDamage is the floor applied to client hit reports.
const MinReportedDamage int32 = 1

// ReportedDamage clamps a client-reported damage value.
func ReportedDamage(reported int32) int32 {
	return max(reported, MinReportedDamage)
}
