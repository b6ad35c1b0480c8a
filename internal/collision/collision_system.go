package collision

import (
	"math"
	"sort"
)

// TileChecker interface for checking if tiles block movement
type TileChecker interface {
	IsTileBlocking(tileX, tileY int) bool
	GetWorldBounds() (width, height int)
}

// CollisionSystem resolves movement against grid tiles and registered
// entities. Tiles may be rectangular.
type CollisionSystem struct {
	tileChecker TileChecker
	entities    map[string]*Entity
	tileWidth   float64
	tileHeight  float64
}

// NewCollisionSystem creates a new collision system
func NewCollisionSystem(tileChecker TileChecker, tileWidth, tileHeight float64) *CollisionSystem {
	return &CollisionSystem{
		tileChecker: tileChecker,
		entities:    make(map[string]*Entity),
		tileWidth:   tileWidth,
		tileHeight:  tileHeight,
	}
}

// RegisterEntity adds an entity to the collision system
func (cs *CollisionSystem) RegisterEntity(entity *Entity) {
	cs.entities[entity.ID] = entity
}

// UnregisterEntity removes an entity from the collision system
func (cs *CollisionSystem) UnregisterEntity(id string) {
	delete(cs.entities, id)
}

// UpdateEntity updates an entity's position in the collision system
func (cs *CollisionSystem) UpdateEntity(id string, x, y float64) {
	if entity, exists := cs.entities[id]; exists {
		entity.BoundingBox.MoveTo(x, y)
	}
}

// GetEntityByID returns the entity with the given ID, or nil if not found
func (cs *CollisionSystem) GetEntityByID(id string) *Entity {
	return cs.entities[id]
}

// CanMoveTo checks if an entity can move to the specified position
func (cs *CollisionSystem) CanMoveTo(entityID string, newX, newY float64) bool {
	entity, exists := cs.entities[entityID]
	if !exists {
		return false
	}

	tempBox := NewBoundingBox(newX, newY, entity.BoundingBox.Width, entity.BoundingBox.Height)
	return cs.canMoveToWorldPosition(tempBox) && cs.canMoveToEntityPosition(entityID, tempBox)
}

func (cs *CollisionSystem) tileAt(x, y float64) (int, int) {
	return int(math.Floor(x / cs.tileWidth)), int(math.Floor(y / cs.tileHeight))
}

// canMoveToWorldPosition checks every tile the box overlaps
func (cs *CollisionSystem) canMoveToWorldPosition(boundingBox *BoundingBox) bool {
	width, height := cs.tileChecker.GetWorldBounds()
	minX, minY, maxX, maxY := boundingBox.GetBounds()

	startTileX, startTileY := cs.tileAt(minX, minY)
	endTileX, endTileY := cs.tileAt(maxX, maxY)

	for tileY := startTileY; tileY <= endTileY; tileY++ {
		for tileX := startTileX; tileX <= endTileX; tileX++ {
			if tileX < 0 || tileX >= width || tileY < 0 || tileY >= height {
				return false
			}
			if cs.tileChecker.IsTileBlocking(tileX, tileY) {
				return false
			}
		}
	}

	return true
}

// canMoveToEntityPosition checks collision with other solid entities
func (cs *CollisionSystem) canMoveToEntityPosition(movingEntityID string, boundingBox *BoundingBox) bool {
	for id, entity := range cs.entities {
		if id == movingEntityID || !entity.Solid {
			continue
		}
		if boundingBox.Intersects(entity.BoundingBox) {
			return false
		}
	}

	return true
}

// GetNearbyEntities returns entities whose centre is within radius of a
// point, nearest first
func (cs *CollisionSystem) GetNearbyEntities(x, y, radius float64, excludeID string) []*Entity {
	var nearby []*Entity
	searchPoint := Point{X: x, Y: y}

	for id, entity := range cs.entities {
		if id == excludeID {
			continue
		}
		if entity.BoundingBox.DistanceToPoint(searchPoint) <= radius {
			nearby = append(nearby, entity)
		}
	}

	sort.Slice(nearby, func(i, j int) bool {
		di := nearby[i].BoundingBox.DistanceToPoint(searchPoint)
		dj := nearby[j].BoundingBox.DistanceToPoint(searchPoint)
		if di != dj {
			return di < dj
		}
		return nearby[i].ID < nearby[j].ID
	})
	return nearby
}

// CheckLineOfSight reports whether the segment between two points crosses
// no blocking tile. The segment is sampled at a quarter of the smaller tile
// dimension so it cannot skip over a wall.
func (cs *CollisionSystem) CheckLineOfSight(x1, y1, x2, y2 float64) bool {
	width, height := cs.tileChecker.GetWorldBounds()

	spacing := math.Min(cs.tileWidth, cs.tileHeight) / 4
	steps := int(math.Ceil(math.Hypot(x2-x1, y2-y1) / spacing))
	if steps < 1 {
		steps = 1
	}
	dx := (x2 - x1) / float64(steps)
	dy := (y2 - y1) / float64(steps)

	for i := 0; i <= steps; i++ {
		tileX, tileY := cs.tileAt(x1+dx*float64(i), y1+dy*float64(i))

		if tileX < 0 || tileX >= width || tileY < 0 || tileY >= height {
			return false
		}
		if cs.tileChecker.IsTileBlocking(tileX, tileY) {
			return false
		}
	}

	return true
}
