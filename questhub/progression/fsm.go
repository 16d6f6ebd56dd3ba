package progression

import (
	"sync"

	"github.com/faucetdrop/questhub/questhub/apperrors"
)

// MutationState is the single active mode of a quest-detail view. The quest
// page used to juggle independent isFunding/isClaiming/isEditing flags; here
// exactly one mutation may be in flight per quest at a time.
type MutationState string

const (
	StateViewing    MutationState = "viewing"
	StateEditing    MutationState = "editing"
	StateFunding    MutationState = "funding"
	StateClaiming   MutationState = "claiming"
	StateSubmitting MutationState = "submitting"
)

// MutationGuard serializes quest mutations: every transition leaves Viewing
// and every completion returns to it. A second Begin while a mutation is
// active fails instead of interleaving.
type MutationGuard struct {
	mu     sync.Mutex
	active map[string]MutationState
}

func NewMutationGuard() *MutationGuard {
	return &MutationGuard{active: make(map[string]MutationState)}
}

// Begin moves the quest from Viewing into state. It fails when another
// mutation is already active for the quest.
func (g *MutationGuard) Begin(questID string, state MutationState) error {
	if state == StateViewing {
		return apperrors.Validation("cannot begin the viewing state")
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if current, ok := g.active[questID]; ok {
		return apperrors.Validation("quest %s is busy: %s in progress", questID, current)
	}
	g.active[questID] = state
	return nil
}

// End returns the quest to Viewing regardless of whether the mutation
// succeeded; failed remote actions leave no partial local state to unwind.
func (g *MutationGuard) End(questID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, questID)
}

// Current reports the active mutation for a quest, or Viewing.
func (g *MutationGuard) Current(questID string) MutationState {
	g.mu.Lock()
	defer g.mu.Unlock()
	if state, ok := g.active[questID]; ok {
		return state
	}
	return StateViewing
}
