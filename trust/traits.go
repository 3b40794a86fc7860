/*
traits.go - Categorical behavior labels per counterparty

PURPOSE:
  Turns the same raw signals the score uses into human-readable labels.
  Traits are independent of the numeric score: a contact can be both a
  "Legendary Veteran" and a "Ghosting Risk" at once.

TRAIT RULES:
  Speed      - average settle time across settled debts: <=2d Flash
               Payer, <=7d Early Settler (mutually exclusive)
  Experience - >=8 settled Legendary Veteran, >=4 Consistent Partner
               (mutually exclusive)
  Progress   - any active debt more than 30% repaid: Steady Progress
  Risk       - any active debt silent for over 15 days: Ghosting Risk

SEE ALSO:
  - score.go: Numeric reliability from the same signals
*/
package trust

import "github.com/debtwise/ledger/ledger"

const (
	TraitFlashPayer        = "Flash Payer"
	TraitEarlySettler      = "Early Settler"
	TraitLegendaryVeteran  = "Legendary Veteran"
	TraitConsistentPartner = "Consistent Partner"
	TraitSteadyProgress    = "Steady Progress"
	TraitGhostingRisk      = "Ghosting Risk"
)

const (
	veteranSettleCount    = 8
	consistentSettleCount = 4
	progressThreshold     = 0.3
	ghostingDays          = 15
)

// Traits derives the behavior labels for every counterparty name.
func Traits(debts []ledger.Debt, now ledger.Date) map[string][]string {
	byName := make(map[string][]ledger.Debt)
	for _, d := range debts {
		byName[d.Name] = append(byName[d.Name], d)
	}

	traits := make(map[string][]string, len(byName))
	for name, contactDebts := range byName {
		traits[name] = contactTraits(contactDebts, now)
	}
	return traits
}

func contactTraits(debts []ledger.Debt, now ledger.Date) []string {
	traits := []string{}

	var settled, active []*ledger.Debt
	for i := range debts {
		if debts[i].IsSettled {
			settled = append(settled, &debts[i])
		} else {
			active = append(active, &debts[i])
		}
	}

	if len(settled) > 0 {
		totalDays := 0
		for _, d := range settled {
			totalDays += daysToSettle(d)
		}
		avgDays := float64(totalDays) / float64(len(settled))
		if avgDays <= fastSettleDays {
			traits = append(traits, TraitFlashPayer)
		} else if avgDays <= earlySettleDays {
			traits = append(traits, TraitEarlySettler)
		}
	}

	if len(settled) >= veteranSettleCount {
		traits = append(traits, TraitLegendaryVeteran)
	} else if len(settled) >= consistentSettleCount {
		traits = append(traits, TraitConsistentPartner)
	}

	for _, d := range active {
		original := d.OriginalAmount.InexactFloat64()
		if original == 0 {
			continue
		}
		remaining := ledger.EffectiveAmount(d, now).InexactFloat64()
		if (original-remaining)/original > progressThreshold {
			traits = append(traits, TraitSteadyProgress)
			break
		}
	}

	for _, d := range active {
		if ledger.DaysBetween(d.LastActivity(), now) > ghostingDays {
			traits = append(traits, TraitGhostingRisk)
			break
		}
	}

	return traits
}
