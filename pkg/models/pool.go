// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"gopkg.in/typ.v4/sync2"
)

// Pool reusable objects to reduce garbage collector
type Pool struct {
	TurnRecords *sync2.Pool[[]TurnRecord]
}

func NewPool() *Pool {
	return &Pool{
		TurnRecords: &sync2.Pool[[]TurnRecord]{
			New: func() []TurnRecord {
				return make([]TurnRecord, 0, 100)
			},
		},
	}
}
