// Package profile implements the profile-edit form model shared by
// onboarding and the edit view: a mutable draft, explicit submit, and
// failure handling that keeps the user's input intact.
package profile

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"reconnect/client"
)

// Form is the editable draft of a user's profile.
type Form struct {
	FullName         string
	Bio              string
	NativeLanguage   string
	LearningLanguage string
	Location         string
	ProfilePic       string
}

// FormFromUser seeds a draft from the current profile.
func FormFromUser(u *client.User) Form {
	if u == nil {
		return Form{}
	}
	return Form{
		FullName:         u.FullName,
		Bio:              u.Bio,
		NativeLanguage:   u.NativeLanguage,
		LearningLanguage: u.LearningLanguage,
		Location:         u.Location,
		ProfilePic:       u.ProfilePic,
	}
}

func (f Form) input() client.ProfileInput {
	return client.ProfileInput{
		FullName:         f.FullName,
		Bio:              f.Bio,
		NativeLanguage:   f.NativeLanguage,
		LearningLanguage: f.LearningLanguage,
		Location:         f.Location,
		ProfilePic:       f.ProfilePic,
	}
}

// SubmitFunc sends the draft to the server.
type SubmitFunc func(ctx context.Context, input client.ProfileInput) (*client.User, error)

// Invalidator drops a cached session so the next read refetches.
type Invalidator interface {
	Invalidate()
}

// Editor drives one profile form through edit and submit.
type Editor struct {
	Form Form

	submit  SubmitFunc
	session Invalidator

	// Notice is the message to surface to the user after a failed
	// submit: the server's own message when it sent one.
	Notice string
}

// NewEditor creates an Editor seeded from user. session may be nil.
func NewEditor(user *client.User, submit SubmitFunc, session Invalidator) *Editor {
	return &Editor{
		Form:    FormFromUser(user),
		submit:  submit,
		session: session,
	}
}

// RandomizeAvatar replaces the draft's avatar with a random one.
func (e *Editor) RandomizeAvatar() {
	e.Form.ProfilePic = RandomAvatarURL()
}

// Submit sends the draft. On success the session cache is invalidated
// so the app picks up the new profile. On failure the draft is left
// untouched and Notice carries the message to show.
func (e *Editor) Submit(ctx context.Context) (*client.User, error) {
	updated, err := e.submit(ctx, e.Form.input())
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			e.Notice = apiErr.Message
		} else {
			e.Notice = "Something went wrong, please try again"
		}
		return nil, err
	}

	e.Notice = ""
	e.Form = FormFromUser(updated)
	if e.session != nil {
		e.session.Invalidate()
	}
	return updated, nil
}

// RandomAvatarURL picks one of the hundred stock avatars.
func RandomAvatarURL() string {
	return fmt.Sprintf("https://avatar.iran.liara.run/public/%d.png", rand.Intn(100)+1)
}
