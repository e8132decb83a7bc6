// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// Principal is the authenticated administrator attached to a session.
//
// There is a single role: a session either carries a principal and may use
// the authoring surface, or it does not.
type Principal struct {
	UserID   string
	Username string
}
