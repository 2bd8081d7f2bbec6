package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gymdesk-api/internal/domain/entity"
	"github.com/sangkips/gymdesk-api/internal/domain/repository"
	"github.com/sangkips/gymdesk-api/pkg/email"
	"github.com/sangkips/gymdesk-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2024, time.February, 20, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func allBranches() context.Context {
	return repository.WithAllBranches(context.Background())
}

func strPtr(s string) *string { return &s }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fakeTx struct{ calls int }

func (f *fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

// fakeMailer records rendered emails
type fakeMailer struct {
	mu   sync.Mutex
	sent []email.Message
}

func (m *fakeMailer) Send(_ context.Context, _ string, msg email.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func newFakeEmailService(m *fakeMailer) *email.EmailService {
	return email.NewEmailServiceWithTransport(email.EmailConfig{
		SMTPHost:    "smtp.test",
		FromEmail:   "desk@gym.test",
		FrontendURL: "https://app.gym.test",
	}, m)
}

type fakeRoleRepo struct {
	roles  map[uint]*entity.Role
	nextID uint
}

func newFakeRoleRepo(names ...string) *fakeRoleRepo {
	r := &fakeRoleRepo{roles: map[uint]*entity.Role{}}
	for _, n := range names {
		_ = r.Create(context.Background(), &entity.Role{Name: n})
	}
	return r
}

func (r *fakeRoleRepo) byName(name string) *entity.Role {
	for _, role := range r.roles {
		if role.Name == name {
			return role
		}
	}
	return nil
}

func (r *fakeRoleRepo) Create(_ context.Context, role *entity.Role) error {
	r.nextID++
	role.ID = r.nextID
	r.roles[role.ID] = role
	return nil
}

func (r *fakeRoleRepo) GetByID(_ context.Context, id uint) (*entity.Role, error) {
	return r.roles[id], nil
}

func (r *fakeRoleRepo) GetByName(_ context.Context, name string) (*entity.Role, error) {
	return r.byName(name), nil
}

func (r *fakeRoleRepo) List(_ context.Context) ([]entity.Role, error) {
	var out []entity.Role
	for _, role := range r.roles {
		out = append(out, *role)
	}
	return out, nil
}

func (r *fakeRoleRepo) SyncPermissions(_ context.Context, roleID uint, permissionIDs []uint) error {
	role := r.roles[roleID]
	role.Permissions = nil
	for _, id := range permissionIDs {
		role.Permissions = append(role.Permissions, entity.Permission{ID: id})
	}
	return nil
}

type fakePermissionRepo struct {
	perms []entity.Permission
}

func (r *fakePermissionRepo) Create(_ context.Context, p *entity.Permission) error {
	p.ID = uint(len(r.perms) + 1)
	r.perms = append(r.perms, *p)
	return nil
}

func (r *fakePermissionRepo) GetByName(_ context.Context, name string) (*entity.Permission, error) {
	for i := range r.perms {
		if r.perms[i].Name == name {
			p := r.perms[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (r *fakePermissionRepo) List(_ context.Context) ([]entity.Permission, error) {
	return r.perms, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
	roles *fakeRoleRepo
}

func newFakeUserRepo(roles *fakeRoleRepo) *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*entity.User{}, roles: roles}
}

func (r *fakeUserRepo) hydrate(u *entity.User) *entity.User {
	c := *u
	if role := r.roles.roles[c.RoleID]; role != nil {
		c.Role = *role
	}
	return &c
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = fixedNow
	}
	c := *user
	r.users[user.ID] = &c
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return r.hydrate(u), nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return r.hydrate(u), nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	c := *user
	r.users[user.ID] = &c
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	r.users[id].Password = hash
	return nil
}

func (r *fakeUserRepo) TouchLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	r.users[id].LastLoginAt = &at
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, _ repository.UserFilter, _ *pagination.PaginationParams) ([]entity.User, int64, error) {
	var out []entity.User
	for _, u := range r.users {
		out = append(out, *r.hydrate(u))
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) ListByRole(_ context.Context, roleName string) ([]entity.User, error) {
	var out []entity.User
	for _, u := range r.users {
		if h := r.hydrate(u); h.Role.Name == roleName {
			out = append(out, *h)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) CountByRole(ctx context.Context, roleName string) (int64, error) {
	users, _ := r.ListByRole(ctx, roleName)
	return int64(len(users)), nil
}

func (r *fakeUserRepo) CountCreatedSince(_ context.Context, since time.Time) (int64, error) {
	var n int64
	for _, u := range r.users {
		if !u.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

type fakeResetRepo struct {
	tokens map[uuid.UUID]*entity.PasswordResetToken
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{tokens: map[uuid.UUID]*entity.PasswordResetToken{}}
}

func (r *fakeResetRepo) Create(_ context.Context, t *entity.PasswordResetToken) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	c := *t
	r.tokens[t.ID] = &c
	return nil
}

func (r *fakeResetRepo) GetByHash(_ context.Context, hash string) (*entity.PasswordResetToken, error) {
	for _, t := range r.tokens {
		if t.TokenHash == hash {
			c := *t
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeResetRepo) MarkAsUsed(_ context.Context, id uuid.UUID, at time.Time) error {
	t, ok := r.tokens[id]
	if !ok || t.UsedAt != nil {
		return gorm.ErrRecordNotFound
	}
	t.UsedAt = &at
	return nil
}

func (r *fakeResetRepo) DeleteByUser(_ context.Context, userID uuid.UUID) error {
	for id, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, id)
		}
	}
	return nil
}

func (r *fakeResetRepo) DeleteExpired(_ context.Context, now time.Time) error {
	for id, t := range r.tokens {
		if t.ExpiresAt.Before(now) {
			delete(r.tokens, id)
		}
	}
	return nil
}

type fakeBranchRepo struct {
	branches map[uuid.UUID]*entity.Branch
}

func newFakeBranchRepo(branches ...*entity.Branch) *fakeBranchRepo {
	r := &fakeBranchRepo{branches: map[uuid.UUID]*entity.Branch{}}
	for _, b := range branches {
		_ = r.Create(context.Background(), b)
	}
	return r
}

func (r *fakeBranchRepo) Create(_ context.Context, b *entity.Branch) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	c := *b
	r.branches[b.ID] = &c
	return nil
}

func (r *fakeBranchRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Branch, error) {
	if b, ok := r.branches[id]; ok {
		c := *b
		return &c, nil
	}
	return nil, nil
}

func (r *fakeBranchRepo) GetByName(_ context.Context, name string) (*entity.Branch, error) {
	for _, b := range r.branches {
		if strings.EqualFold(b.Name, name) {
			c := *b
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeBranchRepo) List(ctx context.Context) ([]entity.Branch, error) {
	var out []entity.Branch
	for _, b := range r.branches {
		if repository.CanAccessBranch(ctx, &b.ID) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBranchRepo) Count(ctx context.Context) (int64, error) {
	out, _ := r.List(ctx)
	return int64(len(out)), nil
}

type fakePlanRepo struct {
	plans   map[uuid.UUID]*entity.Plan
	members *fakeMemberRepo
}

func newFakePlanRepo(plans ...*entity.Plan) *fakePlanRepo {
	r := &fakePlanRepo{plans: map[uuid.UUID]*entity.Plan{}}
	for _, p := range plans {
		_ = r.Create(context.Background(), p)
	}
	return r
}

func (r *fakePlanRepo) Create(_ context.Context, p *entity.Plan) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	c := *p
	r.plans[p.ID] = &c
	return nil
}

func (r *fakePlanRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Plan, error) {
	if p, ok := r.plans[id]; ok {
		c := *p
		return &c, nil
	}
	return nil, nil
}

func (r *fakePlanRepo) Update(_ context.Context, p *entity.Plan) error {
	c := *p
	r.plans[p.ID] = &c
	return nil
}

func (r *fakePlanRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.plans, id)
	return nil
}

func (r *fakePlanRepo) List(_ context.Context, filter repository.PlanFilter) ([]entity.Plan, error) {
	var out []entity.Plan
	for _, p := range r.plans {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePlanRepo) CountMembers(_ context.Context, planID uuid.UUID) (int64, error) {
	if r.members == nil {
		return 0, nil
	}
	var n int64
	for _, m := range r.members.members {
		if m.PlanID != nil && *m.PlanID == planID {
			n++
		}
	}
	return n, nil
}

type fakeMemberRepo struct {
	members map[uuid.UUID]*entity.Member
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: map[uuid.UUID]*entity.Member{}}
}

func (r *fakeMemberRepo) Create(_ context.Context, m *entity.Member) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	c := *m
	r.members[m.ID] = &c
	return nil
}

func (r *fakeMemberRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Member, error) {
	if m, ok := r.members[id]; ok {
		c := *m
		return &c, nil
	}
	return nil, nil
}

func (r *fakeMemberRepo) GetByEmail(_ context.Context, email string) (*entity.Member, error) {
	for _, m := range r.members {
		if strings.EqualFold(m.Email, email) {
			c := *m
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeMemberRepo) FindDuplicate(_ context.Context, email string, phone *string, excludeID *uuid.UUID) (*entity.Member, error) {
	for _, m := range r.members {
		if excludeID != nil && m.ID == *excludeID {
			continue
		}
		if strings.EqualFold(m.Email, email) || (phone != nil && m.Phone != nil && *m.Phone == *phone) {
			c := *m
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeMemberRepo) Update(_ context.Context, m *entity.Member) error {
	c := *m
	r.members[m.ID] = &c
	return nil
}

func (r *fakeMemberRepo) SetStatus(_ context.Context, id uuid.UUID, status string) error {
	r.members[id].Status = status
	return nil
}

func (r *fakeMemberRepo) List(ctx context.Context, _ *pagination.PaginationParams) ([]entity.Member, int64, error) {
	var out []entity.Member
	for _, m := range r.members {
		if repository.CanAccessBranch(ctx, m.BranchID) {
			out = append(out, *m)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeMemberRepo) ListByAdmin(_ context.Context, adminID uuid.UUID) ([]entity.Member, error) {
	var out []entity.Member
	for _, m := range r.members {
		if m.AdminID != nil && *m.AdminID == adminID {
			out = append(out, *m)
		}
	}
	return out, nil
}

type fakeAttendanceRepo struct {
	rows []entity.MemberAttendance
}

func (r *fakeAttendanceRepo) Create(_ context.Context, a *entity.MemberAttendance) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.rows = append(r.rows, *a)
	return nil
}

func (r *fakeAttendanceRepo) ListByMember(_ context.Context, memberID uuid.UUID, _ *pagination.PaginationParams) ([]entity.MemberAttendance, int64, error) {
	var out []entity.MemberAttendance
	for _, a := range r.rows {
		if a.MemberID == memberID {
			out = append(out, a)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeAttendanceRepo) LastCheckIn(_ context.Context, memberID uuid.UUID) (*entity.MemberAttendance, error) {
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].MemberID == memberID {
			a := r.rows[i]
			return &a, nil
		}
	}
	return nil, nil
}

type fakePaymentRepo struct {
	payments []entity.Payment
}

func (r *fakePaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.payments = append(r.payments, *p)
	return nil
}

func (r *fakePaymentRepo) ListByMember(_ context.Context, memberID uuid.UUID) ([]entity.Payment, error) {
	var out []entity.Payment
	for _, p := range r.payments {
		if p.MemberID == memberID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeStaffRepo struct {
	profiles map[uuid.UUID]*entity.StaffProfile
	users    *fakeUserRepo
}

func newFakeStaffRepo(users *fakeUserRepo) *fakeStaffRepo {
	return &fakeStaffRepo{profiles: map[uuid.UUID]*entity.StaffProfile{}, users: users}
}

func (r *fakeStaffRepo) CreateProfile(_ context.Context, p *entity.StaffProfile) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	c := *p
	r.profiles[p.UserID] = &c
	return nil
}

func (r *fakeStaffRepo) GetProfileByUserID(_ context.Context, userID uuid.UUID) (*entity.StaffProfile, error) {
	if p, ok := r.profiles[userID]; ok {
		c := *p
		return &c, nil
	}
	return nil, nil
}

func (r *fakeStaffRepo) UpdateProfile(_ context.Context, p *entity.StaffProfile) error {
	c := *p
	r.profiles[p.UserID] = &c
	return nil
}

func (r *fakeStaffRepo) List(ctx context.Context) ([]entity.Staff, error) {
	var out []entity.Staff
	for _, u := range r.users.users {
		h := r.users.hydrate(u)
		if h.IsSuperAdmin() || !repository.CanAccessBranch(ctx, h.BranchID) {
			continue
		}
		out = append(out, entity.Staff{User: *h, Profile: r.profiles[h.ID]})
	}
	return out, nil
}

type fakeClassTypeRepo struct {
	types map[uuid.UUID]*entity.ClassType
}

func newFakeClassTypeRepo() *fakeClassTypeRepo {
	return &fakeClassTypeRepo{types: map[uuid.UUID]*entity.ClassType{}}
}

func (r *fakeClassTypeRepo) Create(_ context.Context, c *entity.ClassType) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	r.types[c.ID] = &cp
	return nil
}

func (r *fakeClassTypeRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.ClassType, error) {
	if c, ok := r.types[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeClassTypeRepo) GetByName(_ context.Context, name string) (*entity.ClassType, error) {
	for _, c := range r.types {
		if strings.EqualFold(c.Name, name) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeClassTypeRepo) List(_ context.Context) ([]entity.ClassType, error) {
	var out []entity.ClassType
	for _, c := range r.types {
		out = append(out, *c)
	}
	return out, nil
}

type fakeScheduleRepo struct {
	schedules map[uuid.UUID]*entity.ClassSchedule
	bookings  *fakeBookingRepo
	locks     int
}

func newFakeScheduleRepo(bookings *fakeBookingRepo) *fakeScheduleRepo {
	return &fakeScheduleRepo{schedules: map[uuid.UUID]*entity.ClassSchedule{}, bookings: bookings}
}

func (r *fakeScheduleRepo) Create(_ context.Context, s *entity.ClassSchedule) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	c := *s
	c.Members = append([]uuid.UUID{}, s.Members...)
	r.schedules[s.ID] = &c
	return nil
}

func (r *fakeScheduleRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.ClassSchedule, error) {
	if s, ok := r.schedules[id]; ok {
		c := *s
		c.Members = append([]uuid.UUID{}, s.Members...)
		return &c, nil
	}
	return nil, nil
}

func (r *fakeScheduleRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.ClassSchedule, error) {
	r.locks++
	return r.GetByID(ctx, id)
}

func (r *fakeScheduleRepo) GetView(ctx context.Context, id uuid.UUID) (*entity.ScheduleView, error) {
	s, _ := r.GetByID(ctx, id)
	if s == nil {
		return nil, nil
	}
	booked, _ := r.bookings.CountBySchedule(ctx, id)
	return &entity.ScheduleView{ClassSchedule: *s, BookedCount: booked}, nil
}

func (r *fakeScheduleRepo) Update(ctx context.Context, s *entity.ClassSchedule) error {
	return r.Create(ctx, s)
}

func (r *fakeScheduleRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.schedules, id)
	return nil
}

func (r *fakeScheduleRepo) ListViews(ctx context.Context) ([]entity.ScheduleView, error) {
	var out []entity.ScheduleView
	for id, s := range r.schedules {
		if !repository.CanAccessBranch(ctx, &s.BranchID) {
			continue
		}
		v, _ := r.GetView(ctx, id)
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*entity.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[uuid.UUID]*entity.Booking{}}
}

func (r *fakeBookingRepo) Create(_ context.Context, b *entity.Booking) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	c := *b
	r.bookings[b.ID] = &c
	return nil
}

func (r *fakeBookingRepo) Get(_ context.Context, memberID, scheduleID uuid.UUID) (*entity.Booking, error) {
	for _, b := range r.bookings {
		if b.MemberID == memberID && b.ScheduleID == scheduleID {
			c := *b
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.bookings, id)
	return nil
}

func (r *fakeBookingRepo) CountBySchedule(_ context.Context, scheduleID uuid.UUID) (int64, error) {
	var n int64
	for _, b := range r.bookings {
		if b.ScheduleID == scheduleID {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) DeleteBySchedule(_ context.Context, scheduleID uuid.UUID) error {
	for id, b := range r.bookings {
		if b.ScheduleID == scheduleID {
			delete(r.bookings, id)
		}
	}
	return nil
}

func (r *fakeBookingRepo) ListByMember(_ context.Context, memberID uuid.UUID) ([]entity.BookingView, error) {
	var out []entity.BookingView
	for _, b := range r.bookings {
		if b.MemberID == memberID {
			out = append(out, entity.BookingView{ID: b.ID, MemberID: b.MemberID, ScheduleID: b.ScheduleID})
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListBySchedule(_ context.Context, scheduleID uuid.UUID) ([]entity.Booking, error) {
	var out []entity.Booking
	for _, b := range r.bookings {
		if b.ScheduleID == scheduleID {
			out = append(out, *b)
		}
	}
	return out, nil
}

type fakeTaskRepo struct {
	tasks map[uuid.UUID]*entity.HousekeepingTask
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[uuid.UUID]*entity.HousekeepingTask{}}
}

func (r *fakeTaskRepo) Create(_ context.Context, t *entity.HousekeepingTask) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	c := *t
	r.tasks[t.ID] = &c
	return nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.HousekeepingTask, error) {
	if t, ok := r.tasks[id]; ok {
		c := *t
		return &c, nil
	}
	return nil, nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, t *entity.HousekeepingTask) error {
	return r.Create(ctx, t)
}

func (r *fakeTaskRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) List(_ context.Context) ([]entity.HousekeepingTask, error) {
	var out []entity.HousekeepingTask
	for _, t := range r.tasks {
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTaskRepo) ListByAssignee(_ context.Context, userID uuid.UUID) ([]entity.HousekeepingTask, error) {
	var out []entity.HousekeepingTask
	for _, t := range r.tasks {
		if t.AssignedTo != nil && *t.AssignedTo == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

type fakeSalaryRepo struct {
	salaries map[uuid.UUID]*entity.Salary
	users    *fakeUserRepo
}

func newFakeSalaryRepo(users *fakeUserRepo) *fakeSalaryRepo {
	return &fakeSalaryRepo{salaries: map[uuid.UUID]*entity.Salary{}, users: users}
}

func (r *fakeSalaryRepo) view(s *entity.Salary) entity.SalaryView {
	v := entity.SalaryView{Salary: *s}
	if u, ok := r.users.users[s.StaffID]; ok {
		v.FullName = u.FullName
	}
	return v
}

func (r *fakeSalaryRepo) Create(_ context.Context, s *entity.Salary) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	c := *s
	r.salaries[s.ID] = &c
	return nil
}

func (r *fakeSalaryRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Salary, error) {
	if s, ok := r.salaries[id]; ok {
		c := *s
		return &c, nil
	}
	return nil, nil
}

func (r *fakeSalaryRepo) GetView(_ context.Context, id uuid.UUID) (*entity.SalaryView, error) {
	if s, ok := r.salaries[id]; ok {
		v := r.view(s)
		return &v, nil
	}
	return nil, nil
}

func (r *fakeSalaryRepo) Update(ctx context.Context, s *entity.Salary) error {
	return r.Create(ctx, s)
}

func (r *fakeSalaryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.salaries, id)
	return nil
}

func (r *fakeSalaryRepo) List(_ context.Context) ([]entity.SalaryView, error) {
	var out []entity.SalaryView
	for _, s := range r.salaries {
		out = append(out, r.view(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeSalaryRepo) ListByStaff(_ context.Context, staffID uuid.UUID) ([]entity.SalaryView, error) {
	var out []entity.SalaryView
	for _, s := range r.salaries {
		if s.StaffID == staffID {
			out = append(out, r.view(s))
		}
	}
	return out, nil
}

func (r *fakeSalaryRepo) ListByPeriod(_ context.Context, from, to time.Time) ([]entity.SalaryView, error) {
	var out []entity.SalaryView
	for _, s := range r.salaries {
		if !s.PeriodStart.After(to) && !s.PeriodEnd.Before(from) {
			out = append(out, r.view(s))
		}
	}
	return out, nil
}
