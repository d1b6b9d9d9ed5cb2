package models

import "gorm.io/gorm"

// RelationshipStatus defines the state of a friend-request edge.
type RelationshipStatus string

const (
	// StatusSent means the request has been sent but not yet accepted.
	StatusSent RelationshipStatus = "sent"

	// StatusAccepted means the request was accepted and the two profiles
	// are now friends.
	StatusAccepted RelationshipStatus = "accepted"
)

// RelationshipEdge is a directed friend request from one profile to another.
// The unique index on (sender, receiver, status) keeps repeated sends from
// stacking up duplicate pending edges to the same receiver.
//
// The only transition is sent -> accepted; there is no decline or removal.
type RelationshipEdge struct {
	gorm.Model
	SenderID   uint               `gorm:"not null;uniqueIndex:idx_edges_sender_receiver_status"`
	ReceiverID uint               `gorm:"not null;uniqueIndex:idx_edges_sender_receiver_status"`
	Status     RelationshipStatus `gorm:"type:varchar(20);not null;default:'sent';uniqueIndex:idx_edges_sender_receiver_status"`

	Sender   Profile `gorm:"foreignKey:SenderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Receiver Profile `gorm:"foreignKey:ReceiverID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
