package system

import (
	"go.uber.org/zap"

	"github.com/xpathfinder/savethedogs/internal/arena"
	"github.com/xpathfinder/savethedogs/internal/core/event"
)

// SubscribeEventLogger logs session events. Routine per-aggressor events go
// to debug; wave, barrier and end-of-session events go to info.
func SubscribeEventLogger(bus *event.Bus, log *zap.Logger) {
	event.Subscribe(bus, func(e arena.CountdownTick) {
		log.Debug("countdown", zap.Int("remaining", e.Remaining))
	})
	event.Subscribe(bus, func(e arena.WaveStarted) {
		log.Info("wave started", zap.Int("wave", e.Wave), zap.Int("total", e.Total))
	})
	event.Subscribe(bus, func(e arena.AggressorSpawned) {
		log.Debug("bee spawned", zap.Uint64("id", e.ID), zap.Int("health", e.Health),
			zap.Float64("y", e.Pos.Y))
	})
	event.Subscribe(bus, func(e arena.AggressorStunned) {
		log.Debug("bee stunned", zap.Uint64("id", e.ID), zap.Int("barrier", e.BarrierID),
			zap.Int("damage", e.Damage))
	})
	event.Subscribe(bus, func(e arena.AggressorRemoved) {
		log.Debug("bee removed", zap.Uint64("id", e.ID), zap.Bool("escaped", e.Escaped))
	})
	event.Subscribe(bus, func(e arena.TargetStung) {
		log.Info("dog stung", zap.Uint64("bee", e.AggressorID), zap.Int("damage", e.Damage),
			zap.Int64("health", e.Health))
	})
	event.Subscribe(bus, func(e arena.BarrierPlaced) {
		log.Info("barrier placed", zap.Int("id", e.ID), zap.Int64("cost", e.Cost),
			zap.Int64("budget", e.Budget))
	})
	event.Subscribe(bus, func(e arena.BarrierDepleted) {
		log.Info("barrier depleted", zap.Int("id", e.ID), zap.Int("released", e.Released))
	})
	event.Subscribe(bus, func(e arena.SessionEnded) {
		o := e.Outcome
		fields := []zap.Field{
			zap.Stringer("phase", o.Phase),
			zap.String("condition", string(o.Condition)),
			zap.Int64("reward", o.Reward),
			zap.Int("survival_ticks", o.SurvivalTicks),
			zap.Int64("dog_health", o.TargetHealth),
			zap.Int("waves", o.WavesSpawned),
		}
		if o.Reason != nil {
			fields = append(fields, zap.Error(o.Reason))
		}
		log.Info("session ended", fields...)
	})
}
