// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"errors"
)

var (
	// ErrPlayerNotFound is returned when a referenced player has no profile record.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrMatchNotFound is returned when a match ID does not refer to a known candidate.
	ErrMatchNotFound = errors.New("match not found")
	// ErrMatchNotAcceptable is returned when accepting a match that is already
	// expired, cancelled or finished.
	ErrMatchNotAcceptable = errors.New("match is no longer acceptable")
	// ErrQueueUnavailable is returned when the queue store cannot complete an
	// operation; callers should retry the enqueue, no partial state is left behind.
	ErrQueueUnavailable = errors.New("queue store unavailable")
	// ErrCombatPrecondition is returned when player or inventory data required
	// for a simulation cannot be resolved. No turn is executed in that case.
	ErrCombatPrecondition = errors.New("combat precondition failed")
)

var errorCodeMap = map[error]int{
	ErrPlayerNotFound:     520101,
	ErrMatchNotFound:      520102,
	ErrMatchNotAcceptable: 520103,
	ErrQueueUnavailable:   520104,
	ErrCombatPrecondition: 520105,
}

// ErrorCode returns a code for the error.
// It returns 20002 if the error is not registered in the map.
func ErrorCode(err error) int {
	for e, code := range errorCodeMap {
		if errors.Is(err, e) {
			return code
		}
	}
	return 20002
}
