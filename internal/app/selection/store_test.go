package selection_test

import (
	"testing"

	"crm/internal/app/selection"
	"crm/internal/app/selection/storetest"
)

func TestMemoryStore(t *testing.T) {
	storetest.Run(t, func(*testing.T) selection.Store { return selection.NewMemoryStore() })
}
