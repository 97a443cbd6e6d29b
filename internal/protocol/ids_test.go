package protocol

import "testing"

func TestMessageID_Bands(t *testing.T) {
	tests := []struct {
		id                     MessageID
		system, task, isClient bool
	}{
		{SysUserConnect, true, false, false},
		{SysEnd, true, false, false},
		{TaskRequestLogin, false, true, false},
		{TaskEnd, false, true, false},
		{LoginRequest, false, false, true},
		{HitReport, false, false, true},
		{QuestCompleteResponse, false, false, true},
		{0, false, false, false},
	}

	for _, tt := range tests {
		if got := tt.id.IsSystem(); got != tt.system {
			t.Errorf("%s.IsSystem() = %v, want %v", tt.id, got, tt.system)
		}
		if got := tt.id.IsTask(); got != tt.task {
			t.Errorf("%s.IsTask() = %v, want %v", tt.id, got, tt.task)
		}
		if got := tt.id.IsClient(); got != tt.isClient {
			t.Errorf("%s.IsClient() = %v, want %v", tt.id, got, tt.isClient)
		}
	}
}

func TestMessageID_String(t *testing.T) {
	if got := LoginRequest.String(); got != "LoginRequest" {
		t.Errorf("expected LoginRequest, got %q", got)
	}
	if got := MessageID(9999).String(); got != "MessageID(9999)" {
		t.Errorf("expected MessageID(9999), got %q", got)
	}
}
