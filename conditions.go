package main

import "strings"

// ConditionFor picks a coarse condition tag from the raw report. The first
// tag in priority order with a matching code wins; clear is the fallback.
func ConditionFor(raw string) ConditionTag {
	for _, group := range conditionKeywords {
		for _, code := range group.Codes {
			if strings.Contains(raw, code) {
				return group.Tag
			}
		}
	}
	return ConditionClear
}
