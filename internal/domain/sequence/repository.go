package sequence

import "context"

// StudentIDSequence is the sequence backing studentId assignment
const StudentIDSequence = "student_id"

// Repository defines an atomic increment-and-read sequence. Implementations
// must guarantee that concurrent calls never observe the same value, which
// is what makes studentId assignment safe under concurrent enrollment.
type Repository interface {
	// Next atomically increments the named sequence and returns the new
	// value. The first call on a fresh sequence returns 1.
	Next(ctx context.Context, name string) (int, error)
}
