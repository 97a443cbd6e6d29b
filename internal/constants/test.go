package constants

import "time"

// Test Constants
//
// IMPORTANT: These constants are for testing only. DO NOT use in production code.

// Integration Test Timeout Constants
const (
	// TestEventuallyTimeout bounds require.Eventually waits on async processing
	TestEventuallyTimeout = 2 * time.Second

	// TestEventuallyTick is the polling interval for require.Eventually
	TestEventuallyTick = 5 * time.Millisecond
)

// Test Server Configuration Constants
const (
	// TestRoomCapacity is the per-room user capacity used in test fixtures
	TestRoomCapacity = 4
)
