// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package matchmaker

import (
	"github.com/AccelByte/extend-pvp-duel/pkg/config"
	"github.com/AccelByte/extend-pvp-duel/pkg/mathutil"
)

// CalculateTolerance returns the accepted rating distance after
// waitingSeconds in queue. The tolerance widens by StepDelta per full
// StepSeconds waited and never exceeds MaxDelta, so it is non-decreasing in
// wait time and bounded.
func CalculateTolerance(cfg *config.Config, waitingSeconds int) int {
	delta := cfg.BaseDelta + (waitingSeconds/cfg.StepSeconds)*cfg.StepDelta

	return mathutil.Min(delta, cfg.MaxDelta)
}
