package services

import (
	"context"
	"errors"
	"sort"

	"syntra/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// In-memory doubles for the repository and collaborator interfaces.
// The verification fake shares the user fake's map so the two-row
// writes can be checked (and aborted) together.

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
	failTx bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *fakeUserRepo) addUser(u *models.User) *models.User {
	if u.ID == 0 {
		u.ID = r.nextID
		r.nextID++
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	if u.VerificationStatus == "" {
		u.VerificationStatus = models.VerificationUnverified
	}
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.addUser(user)
	return nil
}

func (r *fakeUserRepo) CreateWithOTP(ctx context.Context, user *models.User, otp *models.OtpCode) error {
	if r.failTx {
		return errors.New("tx aborted")
	}
	r.addUser(user)
	otp.UserID = user.ID
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

type fakeOtpRepo struct {
	codes []*models.OtpCode
}

func (r *fakeOtpRepo) GetValid(ctx context.Context, email, code string) (*models.OtpCode, error) {
	for _, c := range r.codes {
		if c.Email == email && c.Code == code && !c.IsExpired() {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOtpRepo) DeleteByEmail(ctx context.Context, email string) error {
	kept := r.codes[:0]
	for _, c := range r.codes {
		if c.Email != email {
			kept = append(kept, c)
		}
	}
	r.codes = kept
	return nil
}

func (r *fakeOtpRepo) DeleteExpired(ctx context.Context) (int64, error) {
	var deleted int64
	kept := r.codes[:0]
	for _, c := range r.codes {
		if c.IsExpired() {
			deleted++
		} else {
			kept = append(kept, c)
		}
	}
	r.codes = kept
	return deleted, nil
}

type fakeVerificationRepo struct {
	requests map[uint]*models.VerificationRequest
	userRepo *fakeUserRepo
	nextID   uint
	failTx   bool
}

func newFakeVerificationRepo(userRepo *fakeUserRepo) *fakeVerificationRepo {
	return &fakeVerificationRepo{
		requests: make(map[uint]*models.VerificationRequest),
		userRepo: userRepo,
		nextID:   1,
	}
}

func (r *fakeVerificationRepo) byUserNewestFirst(userID uint) []*models.VerificationRequest {
	var out []*models.VerificationRequest
	for _, req := range r.requests {
		if req.UserID == userID {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r *fakeVerificationRepo) GetActiveByUserID(ctx context.Context, userID uint) (*models.VerificationRequest, error) {
	for _, req := range r.byUserNewestFirst(userID) {
		if req.Status == models.VerificationPending || req.Status == models.VerificationApproved {
			return req, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeVerificationRepo) GetLatestByUserID(ctx context.Context, userID uint) (*models.VerificationRequest, error) {
	reqs := r.byUserNewestFirst(userID)
	if len(reqs) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return reqs[0], nil
}

func (r *fakeVerificationRepo) GetByID(ctx context.Context, id uint) (*models.VerificationRequest, error) {
	if req, ok := r.requests[id]; ok {
		return req, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeVerificationRepo) ListByStatus(ctx context.Context, status string, offset, limit int) ([]*models.VerificationRequest, int64, error) {
	var all []*models.VerificationRequest
	for _, req := range r.requests {
		if req.Status == status {
			all = append(all, req)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeVerificationRepo) CreatePending(ctx context.Context, req *models.VerificationRequest) error {
	if r.failTx {
		return errors.New("tx aborted")
	}
	user, ok := r.userRepo.users[req.UserID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	req.ID = r.nextID
	r.nextID++
	req.Status = models.VerificationPending
	r.requests[req.ID] = req
	user.VerificationStatus = models.VerificationPending
	return nil
}

func (r *fakeVerificationRepo) Decide(ctx context.Context, requestID uint, status, note string) (*models.VerificationRequest, *models.User, error) {
	if r.failTx {
		return nil, nil, errors.New("tx aborted")
	}
	req, ok := r.requests[requestID]
	if !ok {
		return nil, nil, gorm.ErrRecordNotFound
	}
	user, ok := r.userRepo.users[req.UserID]
	if !ok {
		return nil, nil, gorm.ErrRecordNotFound
	}
	req.Status = status
	if note != "" {
		req.RejectionNote = note
	}
	user.VerificationStatus = status
	return req, user, nil
}

type fakeUploader struct {
	url   string
	err   error
	calls int
}

func (u *fakeUploader) UploadImage(ctx context.Context, data []byte, folder string) (string, error) {
	u.calls++
	if u.err != nil {
		return "", u.err
	}
	if u.url == "" {
		return "https://res.example.com/image.jpg", nil
	}
	return u.url, nil
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeEmailSender struct {
	sent []sentMail
	err  error
}

func (s *fakeEmailSender) Send(to, subject, htmlBody string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentMail{To: to, Subject: subject, Body: htmlBody})
	return nil
}
