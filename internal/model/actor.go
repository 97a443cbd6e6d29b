package model

import "sync"

// Default spawn point of a freshly connected user.
var DefaultUserPosition = Vec3{X: 5, Y: 2, Z: 5}

// Movement constants shared with the client-side prediction.
const (
	MoveSpeed      float32 = 20.0
	FixedDeltaTime float32 = 0.02
)

// Actor — базовая сущность комнаты (пользователь или NPC).
// UUID неизменяем после создания; позиция и вращение защищены mutex.
type Actor struct {
	uuid   int64
	userID string

	mu       sync.RWMutex
	position Vec3
	rotation Quaternion
}

func (a *Actor) init(uuid int64, userID string, pos Vec3) {
	a.uuid = uuid
	a.userID = userID
	a.position = pos
	a.rotation = IdentityQuaternion
}

// UUID возвращает идентификатор актёра на клиенте.
func (a *Actor) UUID() int64 {
	return a.uuid
}

// UserID возвращает отображаемый идентификатор.
func (a *Actor) UserID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.userID
}

func (a *Actor) setUserID(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.userID = id
}

// Position возвращает копию позиции.
func (a *Actor) Position() Vec3 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.position
}

// SetPosition устанавливает позицию.
func (a *Actor) SetPosition(pos Vec3) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.position = pos
}

// Rotation возвращает копию вращения.
func (a *Actor) Rotation() Quaternion {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.rotation
}

// SetRotation устанавливает вращение.
func (a *Actor) SetRotation(rot Quaternion) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rotation = rot
}

// UpdateMovement applies one step of stick input the same way the client predicts it.
// Axis values above 1.0 are rejected (treated as 0). Returns the applied motion.
func (a *Actor) UpdateMovement(dx, dy float32, rot Quaternion) Vec3 {
	if dx > 1.0 {
		dx = 0
	}
	if dy > 1.0 {
		dy = 0
	}

	right := rot.Rotate(Vec3Right).Scale(dx)
	forward := rot.Rotate(Vec3Forward).Scale(dy)
	motion := right.Add(forward).Scale(FixedDeltaTime * MoveSpeed)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.position = a.position.Add(motion)
	a.rotation = rot
	return motion
}
