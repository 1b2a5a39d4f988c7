package app

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"

	"intelimed/internal/model"
)

// DefaultReminderWindow is the look-ahead for upcoming doses, in minutes.
const DefaultReminderWindow = 120

type MedicationService struct {
	store MedicationStore
	now   func() time.Time
}

type CreateMedicationInput struct {
	UserID    string
	Name      string
	Dosage    string
	Frequency string
	Times     []string
	StartDate time.Time
	EndDate   *time.Time
	Active    *bool
}

type Reminder struct {
	MedicationID string `json:"medicationId"`
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Time         string `json:"time"`
	MinutesUntil int    `json:"minutesUntil"`
}

type NextDose struct {
	MedicationID string `json:"medicationId"`
	Name         string `json:"name"`
	Time         string `json:"time"`
}

type ReminderSchedule struct {
	WindowMinutes int        `json:"windowMinutes"`
	Upcoming      []Reminder `json:"upcoming"`
	NextDoses     []NextDose `json:"nextDoses"`
}

func NewMedicationService(store MedicationStore) *MedicationService {
	return &MedicationService{store: store, now: time.Now}
}

func (s *MedicationService) Create(ctx context.Context, input CreateMedicationInput) (*model.Medication, error) {
	userID := strings.TrimSpace(input.UserID)
	name := strings.TrimSpace(input.Name)
	dosage := strings.TrimSpace(input.Dosage)
	frequency := strings.TrimSpace(input.Frequency)
	if userID == "" || name == "" || dosage == "" || frequency == "" {
		return nil, ErrInvalidInput
	}
	if !validTimes(input.Times) {
		return nil, ErrInvalidInput
	}

	now := s.now()
	startDate := input.StartDate
	if startDate.IsZero() {
		startDate = now
	}
	active := true
	if input.Active != nil {
		active = *input.Active
	}

	medication := &model.Medication{
		ID:        model.NewID(),
		UserID:    userID,
		Name:      name,
		Dosage:    dosage,
		Frequency: frequency,
		Times:     datatypes.JSONSlice[string](append([]string{}, input.Times...)),
		StartDate: startDate,
		EndDate:   input.EndDate,
		Active:    active,
		CreatedAt: now,
	}
	if err := s.store.CreateMedication(ctx, medication); err != nil {
		return nil, err
	}
	return medication, nil
}

// ListActive returns only medications still marked active.
func (s *MedicationService) ListActive(ctx context.Context, userID string) ([]model.Medication, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	meds, err := s.store.ListActiveMedicationsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if meds == nil {
		meds = []model.Medication{}
	}
	return meds, nil
}

func (s *MedicationService) Update(ctx context.Context, id string, patch model.MedicationPatch) (*model.Medication, error) {
	medication, err := s.store.GetMedication(ctx, id)
	if err != nil {
		return nil, err
	}
	if medication == nil {
		return nil, ErrNotFound
	}
	if patch.Times != nil && !validTimes(*patch.Times) {
		return nil, ErrInvalidInput
	}
	patch.Apply(medication)
	if err := s.store.SaveMedication(ctx, medication); err != nil {
		return nil, err
	}
	return medication, nil
}

func (s *MedicationService) Delete(ctx context.Context, id string) error {
	deleted, err := s.store.DeleteMedication(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *MedicationService) Reminders(ctx context.Context, userID string, windowMinutes int) (*ReminderSchedule, error) {
	if windowMinutes <= 0 {
		windowMinutes = DefaultReminderWindow
	}
	meds, err := s.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	schedule := &ReminderSchedule{
		WindowMinutes: windowMinutes,
		Upcoming:      UpcomingReminders(meds, now, windowMinutes),
		NextDoses:     []NextDose{},
	}
	for _, med := range meds {
		if next, ok := NextDoseTime(med.Times, now); ok {
			schedule.NextDoses = append(schedule.NextDoses, NextDose{
				MedicationID: med.ID,
				Name:         med.Name,
				Time:         next,
			})
		}
	}
	return schedule, nil
}

// UpcomingReminders lists doses of active medications falling strictly
// between now and now+window minutes on the same day, soonest first.
func UpcomingReminders(meds []model.Medication, now time.Time, windowMinutes int) []Reminder {
	current := now.Hour()*60 + now.Minute()
	upcoming := []Reminder{}
	for _, med := range meds {
		if !med.Active {
			continue
		}
		for _, raw := range med.Times {
			at, ok := parseClock(raw)
			if !ok {
				continue
			}
			if at > current && at < current+windowMinutes {
				upcoming = append(upcoming, Reminder{
					MedicationID: med.ID,
					Name:         med.Name,
					Dosage:       med.Dosage,
					Time:         raw,
					MinutesUntil: at - current,
				})
			}
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].MinutesUntil < upcoming[j].MinutesUntil
	})
	return upcoming
}

// NextDoseTime returns the first listed time later today, or the first
// listed time when none remain.
func NextDoseTime(times []string, now time.Time) (string, bool) {
	if len(times) == 0 {
		return "", false
	}
	current := now.Hour()*60 + now.Minute()
	for _, raw := range times {
		if at, ok := parseClock(raw); ok && at > current {
			return raw, true
		}
	}
	return times[0], true
}

func validTimes(times []string) bool {
	for _, raw := range times {
		if _, ok := parseClock(raw); !ok {
			return false
		}
	}
	return true
}

// parseClock reads "HH:MM" into minutes after midnight.
func parseClock(raw string) (int, bool) {
	hh, mm, found := strings.Cut(strings.TrimSpace(raw), ":")
	if !found {
		return 0, false
	}
	hours, err := strconv.Atoi(hh)
	if err != nil || hours < 0 || hours > 23 {
		return 0, false
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, false
	}
	return hours*60 + minutes, true
}
