package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventTypeValues(t *testing.T) {
	valid := []string{
		"Workshop", "Seminar", "Cultural Fest", "Sports Event",
		"Webinar", "Conference", "Other",
	}
	for _, v := range valid {
		assert.True(t, EventType(v).Valid(), "event type %q", v)
	}

	for _, v := range []string{"", "workshop", "Cultural", "Sports", "Rave"} {
		assert.False(t, EventType(v).Valid(), "event type %q", v)
	}
}

func TestResourceCategoryValues(t *testing.T) {
	valid := []string{
		"Official Documents", "Event Materials",
		"Reports & Academic Content", "Administrative Documents",
	}
	for _, v := range valid {
		assert.True(t, ResourceCategory(v).Valid(), "category %q", v)
	}

	for _, v := range []string{"", "official documents", "Notes", "Other"} {
		assert.False(t, ResourceCategory(v).Valid(), "category %q", v)
	}
}

func TestNotificationTypeValues(t *testing.T) {
	assert.EqualValues(t, "new-event", NotificationTypeEvent)
	assert.EqualValues(t, "new-resource", NotificationTypeResource)
	assert.EqualValues(t, "forum-post", NotificationTypeForumPost)
	assert.EqualValues(t, "forum-mention", NotificationTypeForumMention)
}
