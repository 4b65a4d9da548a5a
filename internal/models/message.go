// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// MediaType categorizes the payload of an outbound message.
type MediaType string

const (
	MediaText     MediaType = "text"
	MediaImage    MediaType = "image"
	MediaAudio    MediaType = "audio"
	MediaVideo    MediaType = "video"
	MediaDocument MediaType = "document"
)

// Valid reports whether t is one of the known media types.
func (t MediaType) Valid() bool {
	switch t {
	case MediaText, MediaImage, MediaAudio, MediaVideo, MediaDocument:
		return true
	}
	return false
}

// MessageStatus is the delivery lifecycle state of a message. A message is
// composed as pending in memory only; the persisted history rows carry a
// terminal sent or failed status.
type MessageStatus string

const (
	StatusPending   MessageStatus = "pending"
	StatusSent      MessageStatus = "sent"
	StatusFailed    MessageStatus = "failed"
	StatusCancelled MessageStatus = "cancelled"
)

// Message is a composed outbound message handed to the delivery webhook.
// The label fields are taken as a unit from one selected Label, or are all
// absent. The verification code is forwarded opaquely.
type Message struct {
	Content          string        `json:"content"`
	MediaType        MediaType     `json:"media_type"`
	MediaURL         *string       `json:"media_url,omitempty"`
	MediaCaption     *string       `json:"media_caption,omitempty"`
	LabelID          *string       `json:"label_id,omitempty"`
	LabelName        *string       `json:"label_name,omitempty"`
	LabelColor       *string       `json:"label_color,omitempty"`
	VerificationCode string        `json:"verification_code"`
	Status           MessageStatus `json:"status"`
}

// MessageRecord is a message as persisted for send history.
type MessageRecord struct {
	ID int64 `json:"id"`
	Message
	CreatedAt time.Time `json:"created_at"`
}
