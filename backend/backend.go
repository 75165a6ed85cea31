// Package backend defines the narrow contract consumed from the replicated backend:
// typed row callbacks per entity kind, the outbound position report and the local identity.
package backend

import "github.com/lixenwraith/blob-arena/entity"

// PlayerHandler receives full-row player notifications
type PlayerHandler interface {
	OnPlayerInsert(p entity.Player)
	OnPlayerUpdate(old, p entity.Player)
	OnPlayerDelete(p entity.Player)
}

// FoodHandler receives full-row food notifications
type FoodHandler interface {
	OnFoodInsert(f entity.Food)
	OnFoodUpdate(old, f entity.Food)
	OnFoodDelete(f entity.Food)
}

// Subscription registers handlers per kind; each call returns its paired release
type Subscription interface {
	SubscribePlayers(h PlayerHandler) (cancel func())
	SubscribeFood(h FoodHandler) (cancel func())
}

// PositionReporter sends the locally predicted position upstream
// Fire-and-forget: implementations must not block the caller
type PositionReporter interface {
	ReportPosition(pos entity.Position)
}

// ReporterFunc adapts a function to PositionReporter
type ReporterFunc func(pos entity.Position)

func (f ReporterFunc) ReportPosition(pos entity.Position) { f(pos) }
