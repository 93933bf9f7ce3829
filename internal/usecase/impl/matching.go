// Package impl contains the implementation of the application's business logic.
package impl

import (
	"fmt"
	"sort"
	"time"

	"htga/internal/domain/entity"
	"htga/internal/usecase"
)

// matchOutcome is the in-memory result of one matching run.
type matchOutcome struct {
	created  []*entity.Assignment
	failures []usecase.AssignmentFailure
	// counters holds the per-evaluator assignment count accumulated within
	// this run. Load balancing is per-batch; it is not persisted across runs.
	counters map[string]int
}

// runMatching pairs two evaluators with each establishment, in establishment
// input order. Eligibility requires the evaluator's specialty set to contain
// the establishment's category (case-sensitive exact match) and, when a cap
// is configured, the evaluator to be under its cap counting in-batch picks.
// Eligible evaluators are ranked by their running in-batch counter with a
// stable sort, so ties fall back to input order.
//
// Establishments that cannot be covered produce a failure entry instead of
// aborting the run.
func runMatching(evaluators []*entity.Evaluator, establishments []*entity.Establishment, now time.Time) *matchOutcome {
	outcome := &matchOutcome{
		counters: make(map[string]int, len(evaluators)),
	}
	for _, evaluator := range evaluators {
		outcome.counters[evaluator.ID] = 0
	}

	for _, establishment := range establishments {
		var matching []*entity.Evaluator
		for _, evaluator := range evaluators {
			if evaluator.HasSpecialty(establishment.Category) {
				matching = append(matching, evaluator)
			}
		}

		if len(matching) < 2 {
			outcome.failures = append(outcome.failures, usecase.AssignmentFailure{
				EstablishmentID:   establishment.ID,
				EstablishmentName: establishment.Name,
				Reason: fmt.Sprintf("not enough evaluators for category %s, need 2 found %d",
					establishment.Category, len(matching)),
			})

			continue
		}

		eligible := matching[:0:0]
		for _, evaluator := range matching {
			if evaluator.MaxAssignments > 0 && outcome.counters[evaluator.ID] >= evaluator.MaxAssignments {
				continue
			}
			eligible = append(eligible, evaluator)
		}

		if len(eligible) < 2 {
			outcome.failures = append(outcome.failures, usecase.AssignmentFailure{
				EstablishmentID:   establishment.ID,
				EstablishmentName: establishment.Name,
				Reason: fmt.Sprintf("evaluators for category %s are at their assignment cap, need 2 found %d",
					establishment.Category, len(eligible)),
			})

			continue
		}

		sort.SliceStable(eligible, func(i, j int) bool {
			return outcome.counters[eligible[i].ID] < outcome.counters[eligible[j].ID]
		})

		first, second := eligible[0], eligible[1]
		assignment := &entity.Assignment{
			EstablishmentID: establishment.ID,
			Status:          entity.AssignmentStatusPending,
			AssignedAt:      now,
			UpdatedAt:       now,
			Slots: [2]*entity.EvaluatorSlot{
				{EvaluatorID: first.ID, Status: entity.SlotStatusPending, AssignedAt: now},
				{EvaluatorID: second.ID, Status: entity.SlotStatusPending, AssignedAt: now},
			},
		}
		outcome.created = append(outcome.created, assignment)
		outcome.counters[first.ID]++
		outcome.counters[second.ID]++
	}

	return outcome
}

// summarize computes the batch summary after the full pass.
func (o *matchOutcome) summarize(establishments []*entity.Establishment) *usecase.AutoAssignSummary {
	perEvaluator := make(map[string]int, len(o.counters))
	for id, count := range o.counters {
		if count > 0 {
			perEvaluator[id] = count
		}
	}

	perCategory := make(map[string]int, len(establishments))
	for _, establishment := range establishments {
		perCategory[establishment.Category]++
	}

	failures := o.failures
	if failures == nil {
		failures = []usecase.AssignmentFailure{}
	}

	return &usecase.AutoAssignSummary{
		Successful:   len(o.created),
		Failed:       len(o.failures),
		Failures:     failures,
		PerEvaluator: perEvaluator,
		PerCategory:  perCategory,
		Created:      o.created,
	}
}
