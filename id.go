package relief

import "github.com/xraph/relief/id"

// ID is the primary identifier type for all Relief entities.
type ID = id.ID

// Prefix identifies the entity type encoded in a TypeID.
type Prefix = id.Prefix
