package service

import (
	"mindwell-backend/internal/model"
	"mindwell-backend/internal/repository"
	"mindwell-backend/utilities"
)

// In-memory repository fakes. Each stores models keyed by id and mimics the
// real implementations' ErrNotFound behavior.

type fakeTypeRepo struct {
	types  map[uint]*model.AssessmentType
	counts map[uint]int64
	nextID uint
}

func newFakeTypeRepo() *fakeTypeRepo {
	return &fakeTypeRepo{
		types:  make(map[uint]*model.AssessmentType),
		counts: make(map[uint]int64),
		nextID: 1,
	}
}

func (f *fakeTypeRepo) add(t *model.AssessmentType) *model.AssessmentType {
	if t.ID == 0 {
		t.ID = f.nextID
		f.nextID++
	}
	f.types[t.ID] = t
	return t
}

func (f *fakeTypeRepo) Create(t *model.AssessmentType) error {
	f.add(t)
	return nil
}

func (f *fakeTypeRepo) GetByID(id uint) (*model.AssessmentType, error) {
	t, ok := f.types[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t, nil
}

func (f *fakeTypeRepo) GetByName(name string) (*model.AssessmentType, error) {
	for _, t := range f.types {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeTypeRepo) ListActive() ([]model.AssessmentType, error) {
	var out []model.AssessmentType
	for _, t := range f.types {
		if t.IsActive {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTypeRepo) ListAll() ([]model.AssessmentType, error) {
	var out []model.AssessmentType
	for _, t := range f.types {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTypeRepo) Update(t *model.AssessmentType) error {
	f.types[t.ID] = t
	return nil
}

func (f *fakeTypeRepo) Delete(t *model.AssessmentType) error {
	delete(f.types, t.ID)
	return nil
}

func (f *fakeTypeRepo) CountAssessments(typeID uint) (int64, error) {
	return f.counts[typeID], nil
}

func (f *fakeTypeRepo) ExistsByName(name string) (bool, error) {
	_, err := f.GetByName(name)
	return err == nil, nil
}

type fakeQuestionRepo struct {
	questions map[uint]*model.AssessmentQuestion
	types     *fakeTypeRepo
	nextID    uint
}

func newFakeQuestionRepo(types *fakeTypeRepo) *fakeQuestionRepo {
	return &fakeQuestionRepo{
		questions: make(map[uint]*model.AssessmentQuestion),
		types:     types,
		nextID:    1,
	}
}

func (f *fakeQuestionRepo) maxNumber(typeID uint) int {
	max := 0
	for _, q := range f.questions {
		if q.AssessmentTypeID == typeID && q.QuestionNumber > max {
			max = q.QuestionNumber
		}
	}
	return max
}

func (f *fakeQuestionRepo) GetByID(id uint) (*model.AssessmentQuestion, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return q, nil
}

func (f *fakeQuestionRepo) ListByType(typeID uint) ([]model.AssessmentQuestion, error) {
	var out []model.AssessmentQuestion
	for n := 1; n <= f.maxNumber(typeID); n++ {
		for _, q := range f.questions {
			if q.AssessmentTypeID == typeID && q.QuestionNumber == n {
				out = append(out, *q)
			}
		}
	}
	return out, nil
}

func (f *fakeQuestionRepo) Create(q *model.AssessmentQuestion) error {
	q.ID = f.nextID
	f.nextID++
	q.QuestionNumber = f.maxNumber(q.AssessmentTypeID) + 1
	for i := range q.Options {
		q.Options[i].OrderIndex = i
	}
	f.questions[q.ID] = q
	return nil
}

func (f *fakeQuestionRepo) BulkCreate(typeID uint, questions []model.AssessmentQuestion) error {
	next := f.maxNumber(typeID) + 1
	for i := range questions {
		questions[i].ID = f.nextID
		f.nextID++
		questions[i].AssessmentTypeID = typeID
		questions[i].QuestionNumber = next
		next++
		f.questions[questions[i].ID] = &questions[i]
	}
	return nil
}

func (f *fakeQuestionRepo) Update(q *model.AssessmentQuestion, options []model.QuestionOption, replaceOptions bool) error {
	if replaceOptions {
		q.Options = options
	}
	f.questions[q.ID] = q
	return nil
}

func (f *fakeQuestionRepo) DeleteAndRenumber(id uint) (uint, error) {
	q, ok := f.questions[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	typeID := q.AssessmentTypeID
	delete(f.questions, id)

	remaining, _ := f.ListByType(typeID)
	for i := range remaining {
		f.questions[remaining[i].ID].QuestionNumber = i + 1
	}
	return typeID, nil
}

type fakeAssessmentRepo struct {
	assessments map[uint]*model.Assessment
	responses   map[uint][]model.AssessmentResponse
	nextID      uint
	failCreate  bool
}

func newFakeAssessmentRepo() *fakeAssessmentRepo {
	return &fakeAssessmentRepo{
		assessments: make(map[uint]*model.Assessment),
		responses:   make(map[uint][]model.AssessmentResponse),
		nextID:      1,
	}
}

func (f *fakeAssessmentRepo) CreateWithResponses(a *model.Assessment, responses []model.AssessmentResponse) error {
	if f.failCreate {
		return repository.ErrNotFound
	}
	a.ID = f.nextID
	f.nextID++
	for i := range responses {
		responses[i].AssessmentID = a.ID
	}
	f.assessments[a.ID] = a
	f.responses[a.ID] = responses
	return nil
}

func (f *fakeAssessmentRepo) ListByUser(userID uint) ([]model.Assessment, error) {
	var out []model.Assessment
	for _, a := range f.assessments {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAssessmentRepo) GetByIDForUser(id, userID uint) (*model.Assessment, error) {
	a, ok := f.assessments[id]
	if !ok || a.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return a, nil
}

func (f *fakeAssessmentRepo) CountResponsesByOption(questionID uint) ([]repository.OptionCount, error) {
	counts := make(map[uint]int64)
	for _, rs := range f.responses {
		for _, r := range rs {
			if r.QuestionID == questionID && r.SelectedOptionID != nil {
				counts[*r.SelectedOptionID]++
			}
		}
	}
	var out []repository.OptionCount
	for id, n := range counts {
		out = append(out, repository.OptionCount{OptionID: id, Count: n})
	}
	return out, nil
}

func (f *fakeAssessmentRepo) ResponseStats(questionID uint) (int64, float64, error) {
	var total int64
	var sum int
	for _, rs := range f.responses {
		for _, r := range rs {
			if r.QuestionID == questionID {
				total++
				sum += r.ResponseValue
			}
		}
	}
	if total == 0 {
		return 0, 0, nil
	}
	return total, float64(sum) / float64(total), nil
}

type fakeRecoRepo struct {
	recos  map[uint]*model.AssessmentRecommendation
	nextID uint
}

func newFakeRecoRepo() *fakeRecoRepo {
	return &fakeRecoRepo{recos: make(map[uint]*model.AssessmentRecommendation), nextID: 1}
}

func (f *fakeRecoRepo) GetByTypeAndRisk(typeID uint, riskLevel model.RiskLevel) ([]model.AssessmentRecommendation, error) {
	var out []model.AssessmentRecommendation
	for _, r := range f.recos {
		if r.AssessmentTypeID == typeID && r.RiskLevel == riskLevel {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRecoRepo) List(typeName string, riskLevel model.RiskLevel) ([]model.AssessmentRecommendation, error) {
	var out []model.AssessmentRecommendation
	for _, r := range f.recos {
		if riskLevel == "" || r.RiskLevel == riskLevel {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRecoRepo) GetByID(id uint) (*model.AssessmentRecommendation, error) {
	r, ok := f.recos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r, nil
}

func (f *fakeRecoRepo) Create(r *model.AssessmentRecommendation) error {
	r.ID = f.nextID
	f.nextID++
	f.recos[r.ID] = r
	return nil
}

func (f *fakeRecoRepo) Update(r *model.AssessmentRecommendation) error {
	f.recos[r.ID] = r
	return nil
}

func (f *fakeRecoRepo) Delete(id uint) error {
	delete(f.recos, id)
	return nil
}

type fakeUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*model.User), nextID: 1}
}

func (f *fakeUserRepo) Create(u *model.User) error {
	u.ID = f.nextID
	f.nextID++
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByID(id uint) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

// choiceQuestion builds a question with n options scored 0..n-1.
func choiceQuestion(id uint, typeID uint, number, optionCount int) model.AssessmentQuestion {
	q := model.AssessmentQuestion{
		ID:               id,
		AssessmentTypeID: typeID,
		QuestionNumber:   number,
		QuestionText:     "question",
		QuestionType:     model.QuestionMultipleChoice,
		IsRequired:       true,
	}
	for i := 0; i < optionCount; i++ {
		q.Options = append(q.Options, model.QuestionOption{
			ID:         id*100 + uint(i),
			QuestionID: id,
			Text:       "option",
			Score:      i,
			OrderIndex: i,
		})
	}
	return q
}

func testBus() *utilities.EventBus {
	return utilities.NewEventBus()
}
