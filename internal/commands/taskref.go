package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"taskboard/internal/board"
	"taskboard/internal/service"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// errCategoryNotFound is returned when --category matches no known category.
var errCategoryNotFound = errors.New("category not found")

// ParseTaskRef parses the task reference at the front of args and returns
// the task ID plus the remaining args.
//
// Accepted forms are the server ID as printed by list ("12") or with a
// leading hash ("#12"). IDs start at 1.
func ParseTaskRef(args []string) (int64, []string, error) {
	if len(args) == 0 {
		return 0, nil, ErrTaskRefRequired
	}

	ref := args[0]
	digits := strings.TrimPrefix(ref, "#")
	if !isAllDigits(digits) {
		return 0, nil, fmt.Errorf("invalid task reference: %s", ref)
	}

	id, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || id < 1 {
		return 0, nil, fmt.Errorf("invalid task reference: %s", ref)
	}
	return id, args[1:], nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// lookupTask checks that id is in the fetched task list.
func lookupTask(st board.State, id int64) (service.Task, error) {
	t, ok := st.FindTask(id)
	if !ok {
		return service.Task{}, fmt.Errorf("%w: %d", board.ErrTaskNotFound, id)
	}
	return t, nil
}

// resolveCategory turns a --category value into a category ID.
// The value is either a category ID or an exact category name.
// An empty value means no category.
func resolveCategory(st board.State, ref string) (int64, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return 0, nil
	}

	if isAllDigits(ref) {
		id, err := strconv.ParseInt(ref, 10, 64)
		if err == nil {
			if _, ok := service.FindCategory(st.Categories, id); ok {
				return id, nil
			}
		}
	}

	if c, ok := st.FindCategoryByName(ref); ok {
		return c.ID, nil
	}
	return 0, fmt.Errorf("%w: %s", errCategoryNotFound, ref)
}
