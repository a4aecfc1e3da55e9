package hb

import "strings"

// Entity is a card-or-journal reference produced by selection. Exactly
// one of the two fields is set.
type Entity struct {
	Card    *Card
	Journal *Journal
}

// Key is the stable identifier properties are attached to: the card id,
// or the journal date.
func (e Entity) Key() string {
	if e.Card != nil {
		return e.Card.ID
	}
	return e.Journal.Date
}

func (e Entity) title() string {
	if e.Card != nil {
		return e.Card.Title
	}
	return e.Journal.Date
}

// FilterCardsAndJournals evaluates a filter config against every card and
// journal in the dataset and returns the matches in table order, cards
// first.
func FilterCardsAndJournals(data *Data, config FilterConfig) []Entity {
	properties := make(map[string]map[string]any)
	for _, rel := range data.ObjectPropertyRelations {
		m, ok := properties[rel.ObjectID]
		if !ok {
			m = make(map[string]any)
			properties[rel.ObjectID] = m
		}
		m[rel.PropertyID] = rel.Value.Value
	}

	propertyTypes := make(map[string]string, len(data.Properties))
	for _, prop := range data.Properties {
		propertyTypes[prop.ID] = prop.Type
	}

	var out []Entity
	for i := range data.CardList {
		entity := Entity{Card: &data.CardList[i]}
		if EvaluateFilter(entity, properties[entity.Key()], propertyTypes, config) {
			out = append(out, entity)
		}
	}
	for i := range data.JournalList {
		entity := Entity{Journal: &data.JournalList[i]}
		if EvaluateFilter(entity, properties[entity.Key()], propertyTypes, config) {
			out = append(out, entity)
		}
	}
	return out
}

// FilterCardsAndJournalsByViews resolves each view id to its filter
// config and unions the matches across views. Duplicates across views
// are allowed here; dedup happens later at the file level.
func FilterCardsAndJournalsByViews(data *Data, viewIDs []string) []Entity {
	views := make(map[string]CollectionView, len(data.CollectionViews))
	for _, view := range data.CollectionViews {
		views[view.ID] = view
	}

	var out []Entity
	for _, id := range viewIDs {
		view, ok := views[id]
		if !ok || view.FilterConfig == nil {
			continue
		}
		out = append(out, FilterCardsAndJournals(data, *view.FilterConfig)...)
	}
	return out
}

// EvaluateFilter decides whether one entity satisfies a filter config.
// It is total: any combination of operator, value and property type
// yields a boolean. A rule naming an unknown property evaluates false so
// and/or composition stays well defined.
func EvaluateFilter(entity Entity, props map[string]any, propertyTypes map[string]string, config FilterConfig) bool {
	match := func(rule FilterRule) bool {
		var value any
		var propertyType string
		if rule.Field == "title" {
			value = entity.title()
			propertyType = "text"
		} else {
			value = props[rule.Field]
			propertyType = propertyTypes[rule.Field]
		}

		// Emptiness operators test absence directly, before any type
		// dispatch, so they work on unknown properties too.
		switch rule.Operator {
		case "isEmpty":
			return isEmptyValue(value)
		case "isNotEmpty":
			return !isEmptyValue(value)
		}

		if value == nil || propertyType == "" {
			return false
		}
		return evaluateValue(value, rule.Operator, rule.Value, propertyType)
	}

	if config.Combinator == "and" {
		for _, rule := range config.Rules {
			if !match(rule) {
				return false
			}
		}
		return true
	}
	for _, rule := range config.Rules {
		if match(rule) {
			return true
		}
	}
	return false
}

func isEmptyValue(value any) bool {
	switch t := value.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	default:
		return false
	}
}

func evaluateValue(value any, operator string, filterValue any, propertyType string) bool {
	switch propertyType {
	case "text", "url", "phone", "email", "date":
		return evaluateTextValue(value, operator, filterValue)
	case "number":
		return evaluateNumberValue(value, operator, filterValue)
	case "select":
		return evaluateSelectValue(value, operator, filterValue)
	case "multiSelect":
		return evaluateMultiSelectValue(value, operator, filterValue)
	case "checkbox":
		return evaluateCheckboxValue(value, operator, filterValue)
	case "relation":
		return evaluateRelationValue(value, operator, filterValue)
	default:
		return false
	}
}

func operatorIn(operator string, supported ...string) bool {
	for _, s := range supported {
		if operator == s {
			return true
		}
	}
	return false
}

// Each evaluator treats a missing filter value as "rule disabled": the
// rule passes for any operator its type defines, so a half-configured
// saved view keeps matching the same records.

func evaluateTextValue(value any, operator string, filterValue any) bool {
	if filterValue == nil {
		return operatorIn(operator, "=", "!=", "contains", "doesNotContain", "startsWith", "endsWith")
	}
	v := asString(value)
	fv := asString(filterValue)
	switch operator {
	case "=":
		return v == fv
	case "!=":
		return v != fv
	case "contains":
		return strings.Contains(v, fv)
	case "doesNotContain":
		return !strings.Contains(v, fv)
	case "startsWith":
		return strings.HasPrefix(v, fv)
	case "endsWith":
		return strings.HasSuffix(v, fv)
	default:
		return false
	}
}

func evaluateNumberValue(value any, operator string, filterValue any) bool {
	if filterValue == nil {
		return operatorIn(operator, "=", "!=", ">", "<", ">=", "<=")
	}
	v, ok := asFloat(value)
	if !ok {
		return false
	}
	fv, ok := asFloat(filterValue)
	if !ok {
		return false
	}
	switch operator {
	case "=":
		return v == fv
	case "!=":
		return v != fv
	case ">":
		return v > fv
	case "<":
		return v < fv
	case ">=":
		return v >= fv
	case "<=":
		return v <= fv
	default:
		return false
	}
}

func evaluateSelectValue(value any, operator string, filterValue any) bool {
	if filterValue == nil {
		return operatorIn(operator, "=", "!=")
	}
	switch operator {
	case "=":
		return asString(value) == asString(filterValue)
	case "!=":
		return asString(value) != asString(filterValue)
	default:
		return false
	}
}

func evaluateMultiSelectValue(value any, operator string, filterValue any) bool {
	if filterValue == nil {
		return operatorIn(operator, "contains", "doesNotContain")
	}
	values := anyToStringSlice(value)
	if values == nil && !isListValue(value) {
		return false
	}
	fv := asString(filterValue)
	switch operator {
	case "contains":
		return sliceContains(values, fv)
	case "doesNotContain":
		return !sliceContains(values, fv)
	default:
		return false
	}
}

func evaluateCheckboxValue(value any, operator string, filterValue any) bool {
	if filterValue == nil {
		return operatorIn(operator, "=", "!=")
	}
	v, ok := asBool(value)
	if !ok {
		return false
	}
	fv, _ := asBool(filterValue)
	switch operator {
	case "=":
		return v == fv
	case "!=":
		return v != fv
	default:
		return false
	}
}

func evaluateRelationValue(value any, operator string, filterValue any) bool {
	if filterValue == nil {
		return operatorIn(operator, "contains", "doesNotContain")
	}
	values := anyToStringSlice(value)
	if values == nil && !isListValue(value) {
		return false
	}
	matched := false
	for _, fv := range anyToStringSlice(filterValue) {
		if sliceContains(values, fv) {
			matched = true
			break
		}
	}
	switch operator {
	case "contains":
		return matched
	case "doesNotContain":
		return !matched
	default:
		return false
	}
}

func sliceContains(values []string, v string) bool {
	for _, item := range values {
		if item == v {
			return true
		}
	}
	return false
}
