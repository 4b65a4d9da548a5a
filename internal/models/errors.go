// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "fmt"

// The error taxonomy below covers every failure class in the console.
// None of these are fatal: each one leaves the operator in a retryable
// state and is surfaced as a single human-readable message.

// FetchError is a read failure against the table store or an external
// endpoint. Callers keep their previous data and offer a retry.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// PersistenceError is a write failure against the table store. The
// triggering edit session stays open so the operator can retry.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ValidationError is raised for missing required input, before any
// network call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// DuplicatePeriodError is the business-rule conflict raised when a save
// would produce a second broadcast group with the same period type. It
// names the conflicting group so the operator can edit or delete it.
type DuplicatePeriodError struct {
	Period       PeriodType
	ConflictID   int64
	ConflictName string
}

func (e *DuplicatePeriodError) Error() string {
	return fmt.Sprintf("a %s broadcast already exists (%q, id %d); edit or delete it first",
		e.Period, e.ConflictName, e.ConflictID)
}

// MediaUploadError blocks a message dispatch whose media upload failed.
// Broadcast photo uploads never raise it; they degrade to "no photo".
type MediaUploadError struct {
	Key string
	Err error
}

func (e *MediaUploadError) Error() string {
	return fmt.Sprintf("media upload %s: %v", e.Key, e.Err)
}

func (e *MediaUploadError) Unwrap() error { return e.Err }

// DeliveryError is a failure from the delivery webhook. Status is zero
// for transport-level failures; otherwise the endpoint's status and
// response body are carried verbatim.
type DeliveryError struct {
	Status int
	Body   string
	Err    error
}

func (e *DeliveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("delivery webhook: %v", e.Err)
	}
	return fmt.Sprintf("delivery webhook returned %d: %s", e.Status, e.Body)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// ImportError is a failure from the contact import webhook.
type ImportError struct {
	Status int
	Body   string
	Err    error
}

func (e *ImportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("import webhook: %v", e.Err)
	}
	return fmt.Sprintf("import webhook returned %d: %s", e.Status, e.Body)
}

func (e *ImportError) Unwrap() error { return e.Err }
