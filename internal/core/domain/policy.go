package domain

// Verb classifies an operation for access decisions. Read covers safe,
// idempotent retrieval; Write covers create, update and delete.
type Verb int

const (
	VerbRead Verb = iota
	VerbWrite
)

// Owned is anything with an owning user. Objects with no owner pass
// ownership checks for nobody.
type Owned interface {
	OwnerID() uint
}

// Predicate is a pure access decision: may the identity perform a verb of
// this class against the target object? obj is nil for collection-level
// checks. Predicates never have side effects; a false result must surface
// to the caller as a forbidden outcome, never a silent no-op.
type Predicate func(id Identity, verb Verb, obj Owned) bool

// AdminWriteElseRead allows reads to everyone and writes only to staff or
// holders of the manage_catalog capability. Guards the author and book
// collections.
func AdminWriteElseRead(id Identity, verb Verb, _ Owned) bool {
	if verb == VerbRead {
		return true
	}
	return id.IsStaff() || id.Has(CapManageCatalog)
}

// OwnerOrAdmin allows access to the owning user or to staff. Guards book
// issues: a borrower sees only their own, staff see all.
func OwnerOrAdmin(id Identity, _ Verb, obj Owned) bool {
	if id.IsAnonymous() {
		return false
	}
	if id.IsStaff() {
		return true
	}
	return obj != nil && obj.OwnerID() == id.UserID
}

// OwnerElseRead allows reads to everyone and writes only to the owning
// user. Guards rating and comment mutation; staff get no override here.
func OwnerElseRead(id Identity, verb Verb, obj Owned) bool {
	if verb == VerbRead {
		return true
	}
	return obj != nil && !id.IsAnonymous() && obj.OwnerID() == id.UserID
}

// All composes predicates with short-circuit AND, mirroring how the
// policies stack per endpoint.
func All(preds ...Predicate) Predicate {
	return func(id Identity, verb Verb, obj Owned) bool {
		for _, p := range preds {
			if !p(id, verb, obj) {
				return false
			}
		}
		return true
	}
}

// Authenticated denies anonymous identities regardless of verb.
func Authenticated(id Identity, _ Verb, _ Owned) bool {
	return !id.IsAnonymous()
}

// AuthenticatedElseRead allows reads to everyone and any write only to
// authenticated identities.
func AuthenticatedElseRead(id Identity, verb Verb, _ Owned) bool {
	if verb == VerbRead {
		return true
	}
	return !id.IsAnonymous()
}
