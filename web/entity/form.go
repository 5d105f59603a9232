package entity

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/partyhub/party-panel/model"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// formValidator reports field errors under their form names.
func formValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// Validate checks a form and returns one "field: message" line per failed
// rule, nil when the form is valid.
func Validate(form any) []string {
	err := formValidator().Struct(form)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldError(fe))
	}
	return msgs
}

func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + ": is required"
	case "email":
		return field + ": must be a valid email"
	case "gt":
		return fmt.Sprintf("%s: must be greater than %s", field, fe.Param())
	case "gte", "min":
		return fmt.Sprintf("%s: must be at least %s", field, fe.Param())
	case "lte", "max":
		return fmt.Sprintf("%s: must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s: must match %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s: failed validation (%s)", field, fe.Tag())
	}
}

// PartyForm is the party create/edit form. Confirm is set by the second step
// of creation, after the user reviewed the summary.
type PartyForm struct {
	Day              string   `form:"day" validate:"required"`
	Date             string   `form:"date" validate:"required,datetime=2006-01-02"`
	Time             string   `form:"time" validate:"required"`
	Duration         string   `form:"duration" validate:"required"`
	Place            string   `form:"place" validate:"required"`
	Event            string   `form:"event"`
	NumberOfActors   int      `form:"number_of_actors" validate:"gte=1"`
	ActorIds         []int    `form:"actor_ids"`
	MeetingDate      string   `form:"meeting_date" validate:"required,datetime=2006-01-02"`
	MeetingTime      string   `form:"meeting_time" validate:"required"`
	MeetingPlace     string   `form:"meeting_place" validate:"required"`
	TransportVehicle string   `form:"transport_vehicle" validate:"required"`
	CameraMan        string   `form:"camera_man" validate:"required"`
	Notes            string   `form:"notes"`
	DressDetails     string   `form:"dress_details" validate:"required"`
	Songs            []string `form:"songs"`
	Status           string   `form:"status" validate:"omitempty,oneof=pending in_progress done cancelled"`
	Confirm          bool     `form:"confirm"`
}

// PartyFormFrom fills the edit form from a fetched party.
func PartyFormFrom(p *model.Party) PartyForm {
	songs := make([]string, 0, len(p.Songs))
	for _, s := range p.Songs {
		songs = append(songs, s.Title)
	}
	return PartyForm{
		Day:              p.Day,
		Date:             p.Date,
		Time:             p.Time,
		Duration:         model.DisplayDuration(p.Duration),
		Place:            p.Place,
		Event:            p.Event,
		NumberOfActors:   p.NumberOfActors,
		ActorIds:         p.ActorIds(),
		MeetingDate:      p.MeetingDate,
		MeetingTime:      p.MeetingTime,
		MeetingPlace:     p.MeetingPlace,
		TransportVehicle: p.TransportVehicle,
		CameraMan:        p.CameraMan,
		Notes:            p.Notes,
		DressDetails:     p.DressDetails,
		Songs:            songs,
		Status:           string(p.Status),
	}
}

// Input converts the form into the API write shape: blank songs are dropped
// and the duration is normalised. A new party starts pending.
func (f *PartyForm) Input() model.PartyInput {
	songs := make([]model.Song, 0, len(f.Songs))
	for _, title := range f.Songs {
		if title = strings.TrimSpace(title); title != "" {
			songs = append(songs, model.Song{Title: title})
		}
	}
	ids := f.ActorIds
	if ids == nil {
		ids = []int{}
	}
	status := model.PartyStatus(f.Status)
	if status == "" {
		status = model.StatusPending
	}
	return model.PartyInput{
		Day:              f.Day,
		Date:             f.Date,
		Time:             f.Time,
		Duration:         model.NormalizeDuration(f.Duration),
		Place:            f.Place,
		Event:            f.Event,
		NumberOfActors:   f.NumberOfActors,
		ActorIds:         ids,
		MeetingDate:      f.MeetingDate,
		MeetingTime:      f.MeetingTime,
		MeetingPlace:     f.MeetingPlace,
		TransportVehicle: f.TransportVehicle,
		CameraMan:        f.CameraMan,
		Notes:            f.Notes,
		DressDetails:     f.DressDetails,
		Songs:            songs,
		Status:           status,
	}
}

// ActorForm is the actor create/edit form. Password is required on create
// only.
type ActorForm struct {
	Name     string `form:"name" validate:"required"`
	Family   string `form:"family" validate:"required"`
	Age      int    `form:"age" validate:"gte=1,lte=120"`
	Role     string `form:"role" validate:"required"`
	Username string `form:"username" validate:"required"`
	Password string `form:"password"`
	Email    string `form:"email" validate:"omitempty,email"`

	CanViewUpcomingParties  bool `form:"can_view_upcoming_parties"`
	CanViewCompletedParties bool `form:"can_view_completed_parties"`
	CanViewAllActors        bool `form:"can_view_all_actors"`
	CanManageParties        bool `form:"can_manage_parties"`
	CanManageActors         bool `form:"can_manage_actors"`
	CanAccessDashboard      bool `form:"can_access_dashboard"`
	CanAccessActors         bool `form:"can_access_actors"`
	CanAccessParties        bool `form:"can_access_parties"`
	CanAccessSchedule       bool `form:"can_access_schedule"`
}

// NewActorForm is an empty form with the default capabilities ticked.
func NewActorForm() ActorForm {
	var f ActorForm
	f.setCapabilities(model.DefaultCapabilities())
	return f
}

// ActorFormFrom fills the edit form from a fetched actor. The password stays
// empty.
func ActorFormFrom(a *model.ActorProfile) ActorForm {
	f := ActorForm{
		Name:     a.Name,
		Family:   a.Family,
		Age:      a.Age,
		Role:     a.Role,
		Username: a.Username,
	}
	f.setCapabilities(a.Capabilities)
	return f
}

func (f *ActorForm) setCapabilities(c model.Capabilities) {
	f.CanViewUpcomingParties = c.CanViewUpcomingParties
	f.CanViewCompletedParties = c.CanViewCompletedParties
	f.CanViewAllActors = c.CanViewAllActors
	f.CanManageParties = c.CanManageParties
	f.CanManageActors = c.CanManageActors
	f.CanAccessDashboard = c.CanAccessDashboard
	f.CanAccessActors = c.CanAccessActors
	f.CanAccessParties = c.CanAccessParties
	f.CanAccessSchedule = c.CanAccessSchedule
}

// Capabilities collects the nine flags of the form.
func (f *ActorForm) Capabilities() model.Capabilities {
	return model.Capabilities{
		CanViewUpcomingParties:  f.CanViewUpcomingParties,
		CanViewCompletedParties: f.CanViewCompletedParties,
		CanViewAllActors:        f.CanViewAllActors,
		CanManageParties:        f.CanManageParties,
		CanManageActors:         f.CanManageActors,
		CanAccessDashboard:      f.CanAccessDashboard,
		CanAccessActors:         f.CanAccessActors,
		CanAccessParties:        f.CanAccessParties,
		CanAccessSchedule:       f.CanAccessSchedule,
	}
}

// PermissionField is one capability checkbox of the actor form.
type PermissionField struct {
	Name    string
	Label   string
	Checked bool
}

// PermissionFields lists the nine flags of the form in declaration order.
func (f *ActorForm) PermissionFields() []PermissionField {
	profile := &model.ActorProfile{Capabilities: f.Capabilities()}
	fields := make([]PermissionField, 0, len(model.Permissions))
	for _, p := range model.Permissions {
		fields = append(fields, PermissionField{
			Name:    p.String(),
			Label:   "actor." + lowerCamel(p.String()),
			Checked: p.Granted(profile),
		})
	}
	return fields
}

// lowerCamel turns can_view_all_actors into canViewAllActors.
func lowerCamel(name string) string {
	parts := strings.Split(name, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}

// Check validates the form; creating an actor also needs a password.
func (f *ActorForm) Check(create bool) []string {
	msgs := Validate(f)
	if create && f.Password == "" {
		msgs = append(msgs, "password: is required")
	}
	return msgs
}

// Input converts the form into the API write shape. An empty password is
// omitted so an edit keeps the current one.
func (f *ActorForm) Input() model.ActorInput {
	return model.ActorInput{
		Name:         f.Name,
		Family:       f.Family,
		Age:          f.Age,
		Role:         f.Role,
		Username:     f.Username,
		Password:     f.Password,
		Email:        f.Email,
		Capabilities: f.Capabilities(),
	}
}
