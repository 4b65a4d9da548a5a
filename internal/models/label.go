// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Label is a classification label owned by the external labels endpoint.
// Labels are fetched, never mutated by this system.
type Label struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Color         string  `json:"color"`
	Description   *string `json:"description,omitempty"`
	ShowOnSidebar *bool   `json:"show_on_sidebar,omitempty"`
	AccountID     *string `json:"account_id,omitempty"`
}
