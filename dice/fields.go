package dice

// Fields returns a flat view of an outcome for structured output and
// predicate evaluation. Every outcome has the keys:
//
//	kind     "check", "damage" or "attack"
//	summary  terse form
//	detail   verbose form
//
// A check adds score, main, other (nil without advantage), crit ("normal",
// "critical" or "fail") and the booleans critical and fail. Damage adds score
// and rolls (the die values in roll order, negative dice negated). An attack
// adds check and damage holding the fields of each side, plus the check's
// crit, critical and fail and the damage score as score.
func Fields(o Outcome) map[string]any {
	f := map[string]any{
		"kind":    o.Kind().String(),
		"summary": o.String(),
		"detail":  o.Detail(),
	}

	switch o := o.(type) {
	case CheckOutcome:
		checkFields(f, o)

	case DamageOutcome:
		damageFields(f, o)

	case AttackOutcome:
		check := map[string]any{
			"kind":    KindCheck.String(),
			"summary": o.check.String(),
			"detail":  o.check.Detail(),
		}
		checkFields(check, o.check)

		damage := map[string]any{
			"kind":    KindDamage.String(),
			"summary": o.damage.String(),
			"detail":  o.damage.Detail(),
		}
		damageFields(damage, o.damage)

		f["check"] = check
		f["damage"] = damage
		f["score"] = damage["score"]
		f["crit"] = check["crit"]
		f["critical"] = check["critical"]
		f["fail"] = check["fail"]
	}

	return f
}

func checkFields(f map[string]any, o CheckOutcome) {
	cs := o.CritScore()

	f["score"] = int(o.Score())
	f["main"] = int(o.main)
	f["other"] = nil

	if o.hasOther {
		f["other"] = int(o.other)
	}

	f["crit"] = cs.Crit.String()
	f["critical"] = cs.Crit == Critical
	f["fail"] = cs.Crit == Fail
}

func damageFields(f map[string]any, o DamageOutcome) {
	rolls := []int{}

	for _, p := range o.parts {
		if r, ok := p.(Rolled); ok {
			for _, v := range r.Values {
				if r.Sides < 0 {
					v = -v
				}

				rolls = append(rolls, int(v))
			}
		}
	}

	f["score"] = int(o.Score())
	f["rolls"] = rolls
}
