package types

// LeadershipPrinciple is one entry of the fixed LP catalog.
type LeadershipPrinciple struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Short string `json:"short"`
}

// LPRole says how a story relates to an LP.
type LPRole int

const (
	// LPRoleNone means the story does not claim the LP.
	LPRoleNone LPRole = iota
	// LPRolePrimary means the LP is a main theme of the story.
	LPRolePrimary
	// LPRoleSecondary means the story also touches the LP.
	LPRoleSecondary
)

// String returns the lowercase role name.
func (r LPRole) String() string {
	switch r {
	case LPRolePrimary:
		return "primary"
	case LPRoleSecondary:
		return "secondary"
	default:
		return "none"
	}
}

// LPAssignment binds an LP id to a role.
type LPAssignment struct {
	ID   string
	Role LPRole
}

// LPAssignments is an ordered set of LP assignments. Each id appears at most once,
// so an LP can never be both primary and secondary.
type LPAssignments []LPAssignment

// NewLPAssignments builds assignments from the two external id lists. Primary ids
// come first; a secondary id that is already primary is dropped.
func NewLPAssignments(primary, secondary []string) LPAssignments {
	var out LPAssignments
	for _, id := range primary {
		if out.RoleOf(id) == LPRoleNone {
			out = append(out, LPAssignment{ID: id, Role: LPRolePrimary})
		}
	}
	for _, id := range secondary {
		if out.RoleOf(id) == LPRoleNone {
			out = append(out, LPAssignment{ID: id, Role: LPRoleSecondary})
		}
	}
	return out
}

// RoleOf returns the role held by id, or LPRoleNone.
func (a LPAssignments) RoleOf(id string) LPRole {
	for _, x := range a {
		if x.ID == id {
			return x.Role
		}
	}
	return LPRoleNone
}

// IDs returns the ids holding role, in order.
func (a LPAssignments) IDs(role LPRole) []string {
	ids := make([]string, 0, len(a))
	for _, x := range a {
		if x.Role == role {
			ids = append(ids, x.ID)
		}
	}
	return ids
}

// With returns a copy where id holds role. Re-asserting the current role keeps
// the position; a changed role moves the id to the end, as if it had been
// removed and added again. LPRoleNone removes the id.
func (a LPAssignments) With(id string, role LPRole) LPAssignments {
	if role == LPRoleNone {
		return a.Without(id)
	}
	if a.RoleOf(id) == role {
		return append(LPAssignments(nil), a...)
	}
	return append(a.Without(id), LPAssignment{ID: id, Role: role})
}

// Without returns a copy with id removed.
func (a LPAssignments) Without(id string) LPAssignments {
	out := make(LPAssignments, 0, len(a))
	for _, x := range a {
		if x.ID != id {
			out = append(out, x)
		}
	}
	return out
}

var leadershipPrinciples = []LeadershipPrinciple{
	{ID: "customer-obsession", Name: "Customer Obsession", Short: "CO"},
	{ID: "ownership", Name: "Ownership", Short: "OWN"},
	{ID: "invent-simplify", Name: "Invent and Simplify", Short: "INV"},
	{ID: "are-right", Name: "Are Right, A Lot", Short: "ARL"},
	{ID: "learn-curious", Name: "Learn and Be Curious", Short: "LBC"},
	{ID: "hire-develop", Name: "Hire and Develop the Best", Short: "HDB"},
	{ID: "highest-standards", Name: "Insist on Highest Standards", Short: "IHS"},
	{ID: "think-big", Name: "Think Big", Short: "TB"},
	{ID: "bias-action", Name: "Bias for Action", Short: "BFA"},
	{ID: "frugality", Name: "Frugality", Short: "FRU"},
	{ID: "earn-trust", Name: "Earn Trust", Short: "ET"},
	{ID: "dive-deep", Name: "Dive Deep", Short: "DD"},
	{ID: "backbone", Name: "Have Backbone; Disagree and Commit", Short: "BB"},
	{ID: "deliver-results", Name: "Deliver Results", Short: "DR"},
	{ID: "best-employer", Name: "Strive to be Earth's Best Employer", Short: "BE"},
	{ID: "broad-responsibility", Name: "Success and Scale Bring Broad Responsibility", Short: "BR"},
}

var leadershipPrincipleIndex = func() map[string]LeadershipPrinciple {
	idx := make(map[string]LeadershipPrinciple, len(leadershipPrinciples))
	for _, lp := range leadershipPrinciples {
		idx[lp.ID] = lp
	}
	return idx
}()

// LeadershipPrinciples returns a copy of the catalog in catalog order.
func LeadershipPrinciples() []LeadershipPrinciple {
	out := make([]LeadershipPrinciple, len(leadershipPrinciples))
	copy(out, leadershipPrinciples)
	return out
}

// GetLP looks up an LP by id.
func GetLP(id string) (LeadershipPrinciple, bool) {
	lp, ok := leadershipPrincipleIndex[id]
	return lp, ok
}

// IsValidLP reports whether id is in the catalog.
func IsValidLP(id string) bool {
	_, ok := leadershipPrincipleIndex[id]
	return ok
}
