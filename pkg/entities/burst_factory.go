package entities

import (
	"github.com/decker502/confetti/pkg/components"
	"github.com/decker502/confetti/pkg/ecs"
)

// CreateBurstEntity creates a burst entity at the specified screen position.
//
// Parameters:
//   - em: EntityManager instance for creating entities
//   - burst: the materialized burst (particles already generated)
//   - originX, originY: screen coordinates the particles fly out from
//
// Returns:
//   - ecs.EntityID: The ID of the created burst entity
func CreateBurstEntity(em *ecs.EntityManager, burst *components.BurstComponent, originX, originY float64) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, burst)
	em.AddComponent(id, &components.PositionComponent{
		X: originX,
		Y: originY,
	})
	return id
}
