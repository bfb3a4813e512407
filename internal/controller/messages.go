package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fitplanhub/internal/apiclient"
	"github.com/magabrotheeeer/fitplanhub/internal/notify"
)

const (
	notifySuccess = notify.Success
	notifyError   = notify.Error
	notifyInfo    = notify.Info
)

const (
	msgNetworkError          = "Network error. Please try again."
	msgDashboardTrainersOnly = "Only trainers can access dashboard"
	msgCreateTrainersOnly    = "Only trainers can create plans"
	msgPasswordsMismatch     = "Passwords do not match"

	msgLoggedIn        = "Successfully logged in!"
	msgRegistered      = "Account created successfully!"
	msgLoggedOut       = "Successfully logged out"
	msgProfileUpdated  = "Profile updated successfully!"
	msgSubscribed      = "Successfully subscribed to plan!"
	msgUnsubscribed    = "Successfully unsubscribed"
	msgPlanCreated     = "Plan created successfully!"
	msgTrainerFollowed = "You are now following this trainer"
	msgTrainerUnfollow = "You have unfollowed this trainer"

	msgLoginFailed        = "Login failed"
	msgRegistrationFailed = "Registration failed"
	msgProfileFailed      = "Failed to update profile"
	msgSubscribeFailed    = "Subscription failed"
	msgUnsubscribeFailed  = "Unsubscribe failed"
	msgCreatePlanFailed   = "Failed to create plan"
	msgFollowFailed       = "Failed to follow trainer"
	msgUnfollowFailed     = "Failed to unfollow trainer"

	msgSortingSoon = "Sorting feature coming soon!"
)

func msgEditPlanSoon(id int) string   { return fmt.Sprintf("Edit plan %d - Feature coming soon!", id) }
func msgDeletePlanSoon(id int) string { return fmt.Sprintf("Delete plan %d - Feature coming soon!", id) }
func msgViewPlanSoon(id int) string   { return fmt.Sprintf("Viewing plan %d - Feature coming soon!", id) }

// rejection текст уведомления для ошибки API: значение ключа "error"
// или fallback. Недоступность API и нечитаемый ответ дают общую сетевую ошибку.
func rejection(err error, fallback string) string {
	apiErr, ok := apiclient.AsAPIError(err)
	if !ok {
		return msgNetworkError
	}
	if apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// fieldRejection как rejection, но склеивает сообщения всех полей в порядке тела.
func fieldRejection(err error, fallback string) string {
	apiErr, ok := apiclient.AsAPIError(err)
	if !ok {
		return msgNetworkError
	}
	if d := apiErr.Detail(); d != "" {
		return d
	}
	return fallback
}

// validationMessage человекочитаемый текст ошибок валидатора через запятую.
func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		field := fieldName(fe.Field())
		switch fe.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "email":
			msgs = append(msgs, "Enter a valid email address")
		case "numeric":
			msgs = append(msgs, fmt.Sprintf("%s must be a number", field))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("%s must be greater than %s", field, fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is not valid", field))
		}
	}
	return strings.Join(msgs, ", ")
}

// fieldName "PreviewDescription" -> "Preview description".
func fieldName(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
