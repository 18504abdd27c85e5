package memory

import (
	"context"
	"sort"
	"sync"

	"pet-marketplace/internal/authz"
	"pet-marketplace/internal/domain/courses"
	"pet-marketplace/internal/platform/apperr"
)

type coursesRepo struct {
	mu          sync.RWMutex
	byID        map[string]courses.Course
	enrollments map[string]courses.Enrollment
	// clave: (courseId, "USER:"+id | "PET:"+id)
	enrollKey  map[pairKey]string
	certifiers map[pairKey]courses.CertifierAssignment
}

func NewCoursesRepo() courses.Repository {
	return &coursesRepo{
		byID:        make(map[string]courses.Course),
		enrollments: make(map[string]courses.Enrollment),
		enrollKey:   make(map[pairKey]string),
		certifiers:  make(map[pairKey]courses.CertifierAssignment),
	}
}

func enrollmentKey(courseID string, t courses.TargetType, targetID string) pairKey {
	return pairKey{courseID, string(t) + ":" + targetID}
}

func (r *coursesRepo) Create(_ context.Context, c courses.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[c.ID]; exists {
		return apperr.ErrDuplicateKey
	}
	r.byID[c.ID] = c
	return nil
}

func (r *coursesRepo) GetByID(_ context.Context, id string) (courses.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return courses.Course{}, apperr.ErrRecordNotFound
	}
	return c, nil
}

func (r *coursesRepo) List(_ context.Context, iss authz.Issuer) ([]courses.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]courses.Course, 0, len(r.byID))
	for _, c := range r.byID {
		if !iss.IsZero() && c.Issuer() != iss {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *coursesRepo) CreateEnrollment(_ context.Context, e courses.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := enrollmentKey(e.CourseID, e.TargetType, e.TargetID())
	if _, exists := r.enrollKey[k]; exists {
		return apperr.ErrDuplicateKey
	}
	r.enrollments[e.ID] = e
	r.enrollKey[k] = e.ID
	return nil
}

func (r *coursesRepo) GetEnrollment(_ context.Context, id string) (courses.Enrollment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.enrollments[id]
	if !ok {
		return courses.Enrollment{}, apperr.ErrRecordNotFound
	}
	return e, nil
}

func (r *coursesRepo) FindEnrollment(_ context.Context, courseID string, t courses.TargetType, targetID string) (courses.Enrollment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.enrollKey[enrollmentKey(courseID, t, targetID)]
	if !ok {
		return courses.Enrollment{}, apperr.ErrRecordNotFound
	}
	return r.enrollments[id], nil
}

func (r *coursesRepo) ListEnrollments(_ context.Context, courseID string) ([]courses.Enrollment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]courses.Enrollment, 0)
	for _, e := range r.enrollments {
		if e.CourseID == courseID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *coursesRepo) UpdateEnrollment(_ context.Context, e courses.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.enrollments[e.ID]; !ok {
		return apperr.ErrRecordNotFound
	}
	r.enrollments[e.ID] = e
	return nil
}

func (r *coursesRepo) CreateCertifier(_ context.Context, a courses.CertifierAssignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := pairKey{a.CourseID, a.UserID}
	if _, exists := r.certifiers[k]; exists {
		return apperr.ErrDuplicateKey
	}
	r.certifiers[k] = a
	return nil
}

func (r *coursesRepo) FindCertifier(_ context.Context, courseID, userID string) (courses.CertifierAssignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.certifiers[pairKey{courseID, userID}]
	if !ok {
		return courses.CertifierAssignment{}, apperr.ErrRecordNotFound
	}
	return a, nil
}

func (r *coursesRepo) ListCertifiers(_ context.Context, courseID string) ([]courses.CertifierAssignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]courses.CertifierAssignment, 0)
	for _, a := range r.certifiers {
		if a.CourseID == courseID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
