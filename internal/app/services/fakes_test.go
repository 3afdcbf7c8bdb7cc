package services

import (
	"context"
	"sort"
	"time"

	"github.com/tutorhive/tutorhive/internal/app/models"
	"github.com/tutorhive/tutorhive/internal/pkg/apperrors"
)

// In-memory repository fakes. They mirror the persistence contracts the
// services rely on (capacity gate and transitions evaluated atomically per
// offering) without a database.

type fakeOfferingRepo struct {
	nextID       int64
	offerings    map[int64]*models.CourseOffering
	sessions     map[int64][]*models.Session
	activeCounts map[int64]int
}

func newFakeOfferingRepo() *fakeOfferingRepo {
	return &fakeOfferingRepo{
		nextID:       1,
		offerings:    make(map[int64]*models.CourseOffering),
		sessions:     make(map[int64][]*models.Session),
		activeCounts: make(map[int64]int),
	}
}

func (f *fakeOfferingRepo) Create(_ context.Context, offering *models.CourseOffering, sessions []*models.Session) error {
	offering.ID = f.nextID
	offering.CreatedAt = time.Now()
	f.nextID++
	f.offerings[offering.ID] = offering

	for i, s := range sessions {
		s.ID = offering.ID*1000 + int64(i)
		s.OfferingID = offering.ID
	}
	f.sessions[offering.ID] = sessions
	return nil
}

func (f *fakeOfferingRepo) GetByID(_ context.Context, id int64) (*models.CourseOffering, error) {
	offering, ok := f.offerings[id]
	if !ok {
		return nil, apperrors.ErrOfferingNotFound
	}
	return offering, nil
}

func (f *fakeOfferingRepo) CountActiveEnrollments(_ context.Context, offeringID int64) (int, error) {
	return f.activeCounts[offeringID], nil
}

func (f *fakeOfferingRepo) List(_ context.Context, offset uint64, limit int) ([]*models.CourseOffering, int64, error) {
	ids := make([]int64, 0, len(f.offerings))
	for id := range f.offerings {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var page []*models.CourseOffering
	for i, id := range ids {
		if uint64(i) < offset {
			continue
		}
		if len(page) == limit {
			break
		}
		page = append(page, f.offerings[id])
	}
	return page, int64(len(ids)), nil
}

type fakeSessionRepo struct {
	offerings *fakeOfferingRepo
	updates   int
}

func newFakeSessionRepo(offerings *fakeOfferingRepo) *fakeSessionRepo {
	return &fakeSessionRepo{offerings: offerings}
}

func (f *fakeSessionRepo) GetByID(_ context.Context, id int64) (*models.Session, error) {
	for _, sessions := range f.offerings.sessions {
		for _, s := range sessions {
			if s.ID == id {
				return s, nil
			}
		}
	}
	return nil, apperrors.ErrSessionNotFound
}

func (f *fakeSessionRepo) ListByOffering(_ context.Context, offeringID int64) ([]*models.Session, error) {
	return f.offerings.sessions[offeringID], nil
}

func (f *fakeSessionRepo) Update(_ context.Context, _ *models.Session) error {
	f.updates++
	return nil
}

// fakeEnrollmentRepo replays the capacity gate and the transition function
// the way the SQL repository does, one offering at a time.
type fakeEnrollmentRepo struct {
	offerings   *fakeOfferingRepo
	nextID      int64
	clock       time.Time
	enrollments map[int64]*models.Enrollment
}

func newFakeEnrollmentRepo(offerings *fakeOfferingRepo) *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{
		offerings:   offerings,
		nextID:      1,
		clock:       time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC),
		enrollments: make(map[int64]*models.Enrollment),
	}
}

func (f *fakeEnrollmentRepo) tick() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

func (f *fakeEnrollmentRepo) countActive(offeringID int64) int {
	count := 0
	for _, e := range f.enrollments {
		if e.OfferingID == offeringID && e.Status == models.EnrollmentActive {
			count++
		}
	}
	return count
}

func (f *fakeEnrollmentRepo) Request(ctx context.Context, offeringID, learnerID int64) (*models.Enrollment, error) {
	offering, err := f.offerings.GetByID(ctx, offeringID)
	if err != nil {
		return nil, err
	}

	for _, e := range f.enrollments {
		if e.OfferingID == offeringID && e.LearnerID == learnerID && e.Status != models.EnrollmentCancelled {
			return nil, apperrors.ErrEnrollmentExists
		}
	}

	now := f.tick()
	enrollment := &models.Enrollment{
		ID:             f.nextID,
		OfferingID:     offeringID,
		LearnerID:      learnerID,
		Status:         models.DecideInitialStatus(offering.ApprovalRequired, offering.Capacity, f.countActive(offeringID)),
		RequestedAt:    now,
		TransitionedAt: now,
	}
	f.nextID++
	f.enrollments[enrollment.ID] = enrollment
	return enrollment, nil
}

func (f *fakeEnrollmentRepo) Decide(ctx context.Context, enrollmentID int64, action models.EnrollmentAction) (*models.Enrollment, error) {
	return f.transition(ctx, enrollmentID, action)
}

func (f *fakeEnrollmentRepo) Cancel(ctx context.Context, enrollmentID int64) (*models.Enrollment, *models.Enrollment, error) {
	enrollment, ok := f.enrollments[enrollmentID]
	if !ok {
		return nil, nil, apperrors.ErrEnrollmentNotFound
	}
	wasActive := enrollment.Status == models.EnrollmentActive

	next, err := models.NextStatus(enrollment.Status, models.ActionCancel, false)
	if err != nil {
		return nil, nil, err
	}
	enrollment.Status = next
	enrollment.TransitionedAt = f.tick()

	var promoted *models.Enrollment
	if wasActive {
		if head := f.waitlistHead(enrollment.OfferingID); head != nil {
			head.Status = models.EnrollmentActive
			head.TransitionedAt = f.tick()
			promoted = head
		}
	}
	return enrollment, promoted, nil
}

func (f *fakeEnrollmentRepo) Promote(ctx context.Context, enrollmentID int64) (*models.Enrollment, error) {
	return f.transition(ctx, enrollmentID, models.ActionPromote)
}

func (f *fakeEnrollmentRepo) transition(ctx context.Context, enrollmentID int64, action models.EnrollmentAction) (*models.Enrollment, error) {
	enrollment, ok := f.enrollments[enrollmentID]
	if !ok {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	offering, err := f.offerings.GetByID(ctx, enrollment.OfferingID)
	if err != nil {
		return nil, err
	}

	seatAvailable := f.countActive(enrollment.OfferingID) < offering.Capacity
	next, err := models.NextStatus(enrollment.Status, action, seatAvailable)
	if err != nil {
		return nil, err
	}
	enrollment.Status = next
	enrollment.TransitionedAt = f.tick()
	return enrollment, nil
}

func (f *fakeEnrollmentRepo) waitlistHead(offeringID int64) *models.Enrollment {
	var head *models.Enrollment
	for _, e := range f.enrollments {
		if e.OfferingID != offeringID || e.Status != models.EnrollmentWaitlist {
			continue
		}
		if head == nil || e.RequestedAt.Before(head.RequestedAt) {
			head = e
		}
	}
	return head
}

func (f *fakeEnrollmentRepo) GetByID(_ context.Context, id int64) (*models.Enrollment, error) {
	enrollment, ok := f.enrollments[id]
	if !ok {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	return enrollment, nil
}

func (f *fakeEnrollmentRepo) ListByOffering(_ context.Context, offeringID int64) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, e := range f.enrollments {
		if e.OfferingID == offeringID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestedAt.Before(out[j].RequestedAt) })
	return out, nil
}

func (f *fakeEnrollmentRepo) ListByLearner(_ context.Context, learnerID int64) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, e := range f.enrollments {
		if e.LearnerID == learnerID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestedAt.After(out[j].RequestedAt) })
	return out, nil
}
