// Package integrity decides whether deleting an entity is permitted given its
// reverse-reference list. The predicates are pure; the calling store is
// responsible for actually refusing the mutation.
package integrity

import (
	"fmt"

	"github.com/mediancode/apidesign/types"
)

// CheckFieldDeletion permits deletion when no endpoint references the field.
// Otherwise it returns a blocked result naming the field and counting the
// referencing endpoints.
func CheckFieldDeletion(fieldName string, usedInAPIs []string) types.DeletionResult {
	if len(usedInAPIs) == 0 {
		return types.Deleted("")
	}
	return types.DeletionBlocked(fmt.Sprintf(
		"Cannot delete field %q: used in %d API(s)", fieldName, len(usedInAPIs)))
}

// CheckObjectDeletion is the object analogue of CheckFieldDeletion.
func CheckObjectDeletion(objectName string, usedInAPIs []string) types.DeletionResult {
	if len(usedInAPIs) == 0 {
		return types.Deleted("")
	}
	return types.DeletionBlocked(fmt.Sprintf(
		"Cannot delete object %q: used in %d API(s)", objectName, len(usedInAPIs)))
}

// CheckNamespaceDeletion permits deletion only when nothing still lives in
// the namespace. entityCount aggregates fields, validators, objects, tags,
// and endpoints scoped to it.
func CheckNamespaceDeletion(namespaceName string, entityCount int) types.DeletionResult {
	if entityCount == 0 {
		return types.Deleted("")
	}
	return types.DeletionBlocked(fmt.Sprintf(
		"Cannot delete namespace %q: %d entit(ies) still reference it", namespaceName, entityCount))
}
