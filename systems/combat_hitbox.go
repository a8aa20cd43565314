package systems

import (
	"slices"

	"github.com/automoto/doomerang-combat/archetypes"
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/systems/factory"
	"github.com/automoto/doomerang-combat/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// spawnHitbox creates the melee hitbox for the owner's current attack state.
// The hitbox lives from Active until Recovery or the end of the attack.
func spawnHitbox(w donburi.World, owner *donburi.Entry, attackID uint64) {
	melee := components.MeleeAttack.Get(owner)
	if melee.ActiveHitbox != nil && melee.ActiveHitbox.Valid() {
		return
	}

	state := components.State.Get(owner).CurrentState
	hb, ok := cfg.Attacks.Hitbox(state)
	if !ok || hb.Width <= 0 || hb.Height <= 0 {
		return
	}

	hitbox := archetypes.Hitbox.Spawn(w)
	obj := resolv.NewObject(0, 0, hb.Width, hb.Height)
	obj.SetShape(resolv.NewRectangle(0, 0, hb.Width, hb.Height))
	obj.AddTags(tags.ResolvHitbox)
	obj.Data = hitbox
	components.Object.SetValue(hitbox, components.ObjectData{Object: obj})

	data := components.HitboxData{
		OwnerEntity: owner,
		AttackID:    attackID,
		Damage:      hb.Damage,
		OffsetX:     hb.OffsetX,
		OffsetY:     hb.OffsetY,
		HitEntities: make(map[*donburi.Entry]bool),
	}
	placeHitbox(&data, obj)
	components.Hitbox.SetValue(hitbox, data)

	if space := factory.SpaceOf(w); space != nil {
		space.Add(obj)
	}
	melee.ActiveHitbox = hitbox
}

// removeHitbox deletes the owner's active hitbox, if any.
func removeHitbox(w donburi.World, owner *donburi.Entry) {
	if !owner.Valid() || !owner.HasComponent(components.MeleeAttack) {
		return
	}
	melee := components.MeleeAttack.Get(owner)
	hitbox := melee.ActiveHitbox
	melee.ActiveHitbox = nil
	if hitbox == nil || !hitbox.Valid() {
		return
	}
	destroyHitbox(w, hitbox)
}

func destroyHitbox(w donburi.World, hitbox *donburi.Entry) {
	obj := components.Object.Get(hitbox).Object
	if space := factory.SpaceOf(w); space != nil && obj != nil {
		space.Remove(obj)
	}
	w.Remove(hitbox.Entity())
}

// UpdateCombatHitboxes moves hitboxes with their owners and queues damage for
// every target they touch. Each target is hit at most once per hitbox.
func UpdateCombatHitboxes(w donburi.World) {
	for _, e := range slices.Collect(tags.Hitbox.Iter(w)) {
		hitbox := components.Hitbox.Get(e)
		obj := components.Object.Get(e).Object

		owner := hitbox.OwnerEntity
		if owner == nil || !owner.Valid() {
			destroyHitbox(w, e)
			continue
		}

		placeHitbox(hitbox, obj)
		checkHitboxCollisions(hitbox, obj)
	}
}

// placeHitbox positions the hitbox in front of its owner, centered
// vertically.
func placeHitbox(hitbox *components.HitboxData, obj *resolv.Object) {
	owner := hitbox.OwnerEntity
	ownerObj := components.Object.Get(owner).Object

	direction := cfg.DirectionRight
	if owner.HasComponent(components.Fighter) {
		direction = components.Fighter.Get(owner).Direction
	}

	if direction > 0 {
		obj.X = ownerObj.X + ownerObj.W + hitbox.OffsetX
	} else {
		obj.X = ownerObj.X - obj.W - hitbox.OffsetX
	}
	obj.Y = ownerObj.Y + (ownerObj.H-obj.H)/2 + hitbox.OffsetY
	obj.Update()
}

func checkHitboxCollisions(hitbox *components.HitboxData, obj *resolv.Object) {
	check := obj.Check(0, 0, tags.ResolvTarget)
	if check == nil {
		return
	}
	for _, other := range check.Objects {
		target, ok := other.Data.(*donburi.Entry)
		if !ok || !shouldHitTarget(hitbox, target, obj, other) {
			continue
		}
		applyHit(hitbox, target)
	}
}

func shouldHitTarget(hitbox *components.HitboxData, target *donburi.Entry, obj, targetObj *resolv.Object) bool {
	if target == hitbox.OwnerEntity || !target.Valid() {
		return false
	}
	if hitbox.HitEntities[target] {
		return false
	}
	// Check works on grid cells; confirm the boxes really overlap.
	return overlaps(obj, targetObj)
}

func overlaps(a, b *resolv.Object) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

func applyHit(hitbox *components.HitboxData, target *donburi.Entry) {
	hitbox.HitEntities[target] = true

	// Fighters hit by a melee attack are stunned out of their own attack.
	stun := target.HasComponent(components.Fighter)
	queueDamage(target, components.DamageEventData{
		Amount:   hitbox.Damage,
		AttackID: hitbox.AttackID,
		Stun:     stun,
	})

	owner := hitbox.OwnerEntity
	if owner.HasComponent(components.MeleeAttack) {
		melee := components.MeleeAttack.Get(owner)
		melee.Hits++
		melee.TotalHits++
		melee.TotalDamage += hitbox.Damage
	}
}

// queueDamage adds a damage event, merging with one already queued this tick.
func queueDamage(target *donburi.Entry, ev components.DamageEventData) {
	if target.HasComponent(components.DamageEvent) {
		queued := components.DamageEvent.Get(target)
		queued.Amount += ev.Amount
		queued.Stun = queued.Stun || ev.Stun
		if ev.AttackID != 0 {
			queued.AttackID = ev.AttackID
		}
		return
	}
	donburi.Add(target, components.DamageEvent, &ev)
}
