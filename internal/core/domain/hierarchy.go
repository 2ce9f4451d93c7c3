package domain

import "sort"

// RankUsers computes each member's depth in the manager-reports forest.
// Every user without a reporting manager is a root at rank 1; a breadth-first
// walk from all roots assigns each reachable user the rank of its tree depth.
// Users whose reporting manager is missing from the snapshot are unreachable
// and get no rank.
func RankUsers(users []OrgUser) map[uint64]int {
	ranks, _ := rankForest(users)
	return ranks
}

// rankForest walks the forest once, recording each reachable user's rank and
// the root of the tree it belongs to.
func rankForest(users []OrgUser) (map[uint64]int, map[uint64]uint64) {
	reports := make(map[uint64][]uint64, len(users))
	var roots []uint64
	for _, u := range users {
		if u.ReportingManagerID == nil {
			roots = append(roots, u.ID)
			continue
		}
		managerID := *u.ReportingManagerID
		reports[managerID] = append(reports[managerID], u.ID)
	}

	ranks := make(map[uint64]int, len(users))
	rootOf := make(map[uint64]uint64, len(users))
	queue := make([]uint64, 0, len(users))
	for _, id := range roots {
		ranks[id] = 1
		rootOf[id] = id
		queue = append(queue, id)
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, reportID := range reports[id] {
			if _, seen := ranks[reportID]; seen {
				// Defensive: a manager loop in bad data must not
				// requeue forever.
				continue
			}
			ranks[reportID] = ranks[id] + 1
			rootOf[reportID] = rootOf[id]
			queue = append(queue, reportID)
		}
	}

	return ranks, rootOf
}

// UsersAtOrBelowRank returns the members the actor may see: everyone in the
// actor's own tree whose rank is at least the actor's, so the actor, their
// depth peers under the same root and everyone deeper, never superiors.
// Members of other trees are invisible whatever their rank. An actor without
// a rank sees nobody; that is a valid outcome, not an error.
func UsersAtOrBelowRank(users []OrgUser, actorID uint64) []OrgUser {
	ranks, rootOf := rankForest(users)
	actorRank, ok := ranks[actorID]
	if !ok {
		return nil
	}
	actorRoot := rootOf[actorID]

	visible := make([]OrgUser, 0, len(users))
	for _, u := range users {
		rank, ok := ranks[u.ID]
		if ok && rank >= actorRank && rootOf[u.ID] == actorRoot {
			visible = append(visible, u)
		}
	}
	sort.Slice(visible, func(i, j int) bool {
		if ranks[visible[i].ID] != ranks[visible[j].ID] {
			return ranks[visible[i].ID] < ranks[visible[j].ID]
		}
		return visible[i].ID < visible[j].ID
	})
	return visible
}
