package dto

import "time"

// ============ Общие структуры ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Сводка по списку: количество, сумма, среднее, минимум, максимум и разбивка по категориям
type SummaryResponse struct {
	Count      int                `json:"count"`
	Sum        float64            `json:"sum"`
	Mean       float64            `json:"mean"`
	Min        float64            `json:"min"`
	Max        float64            `json:"max"`
	Categories []CategoryResponse `json:"categories"`
}

type CategoryResponse struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Sum      float64 `json:"sum"`
}

// ============ Колледжи (Colleges) ============

type CollegeResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	Country    string    `json:"country"`
	PostalCode string    `json:"postal_code"`
	Website    string    `json:"website"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes"`
	CreatedBy  *uint     `json:"created_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CollegeListResponse struct {
	Colleges []CollegeResponse `json:"colleges"`
	Total    int               `json:"total"`
	ByStatus map[string]int    `json:"by_status"`
}

type CreateCollegeRequest struct {
	Name       string `json:"name" binding:"required,max=200"`
	Address    string `json:"address"`
	City       string `json:"city" binding:"max=100"`
	State      string `json:"state" binding:"max=100"`
	Country    string `json:"country" binding:"max=100"`
	PostalCode string `json:"postal_code" binding:"max=20"`
	Website    string `json:"website" binding:"omitempty,url"`
	Status     string `json:"status" binding:"omitempty,college_status"`
	Notes      string `json:"notes"`
}

type UpdateCollegeRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=1,max=200"`
	Address    *string `json:"address"`
	City       *string `json:"city" binding:"omitempty,max=100"`
	State      *string `json:"state" binding:"omitempty,max=100"`
	Country    *string `json:"country" binding:"omitempty,max=100"`
	PostalCode *string `json:"postal_code" binding:"omitempty,max=20"`
	Website    *string `json:"website" binding:"omitempty,url"`
	Notes      *string `json:"notes"`
}

type UpdateCollegeStatusRequest struct {
	Status string `json:"status" binding:"required,college_status"`
}

type AssignCourseRequest struct {
	CourseID    uint     `json:"course_id" binding:"required"`
	CustomPrice *float64 `json:"custom_price" binding:"omitempty,gte=0"`
}

type AssignPricingModelRequest struct {
	PricingModelID uint `json:"pricing_model_id" binding:"required"`
}

type CollegeCourseResponse struct {
	CourseResponse
	CustomPrice *float64 `json:"custom_price,omitempty"`
}

// ============ Контакты (Contacts) ============

type ContactResponse struct {
	ID          uint      `json:"id"`
	CollegeID   uint      `json:"college_id"`
	Name        string    `json:"name"`
	Designation string    `json:"designation"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	IsPrimary   bool      `json:"is_primary"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateContactRequest struct {
	CollegeID   uint   `json:"college_id" binding:"required"`
	Name        string `json:"name" binding:"required,max=150"`
	Designation string `json:"designation" binding:"max=100"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone" binding:"max=30"`
	IsPrimary   bool   `json:"is_primary"`
	Notes       string `json:"notes"`
}

type UpdateContactRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=150"`
	Designation *string `json:"designation" binding:"omitempty,max=100"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone" binding:"omitempty,max=30"`
	IsPrimary   *bool   `json:"is_primary"`
	Notes       *string `json:"notes"`
}

// ============ Встречи (Meetings) ============

type MeetingResponse struct {
	ID             uint      `json:"id"`
	CollegeID      uint      `json:"college_id"`
	Title          string    `json:"title"`
	ScheduledAt    time.Time `json:"scheduled_at"`
	ScheduledAtIST string    `json:"scheduled_at_ist"`
	Location       string    `json:"location"`
	Agenda         string    `json:"agenda"`
	Outcome        *string   `json:"outcome"`
	NextFollowUp   *string   `json:"next_follow_up"`
	Notes          string    `json:"notes"`
	CreatedBy      *uint     `json:"created_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type CreateMeetingRequest struct {
	CollegeID    uint      `json:"college_id" binding:"required"`
	Title        string    `json:"title" binding:"required,max=200"`
	ScheduledAt  time.Time `json:"scheduled_at" binding:"required"`
	Location     string    `json:"location" binding:"max=200"`
	Agenda       string    `json:"agenda"`
	Outcome      *string   `json:"outcome" binding:"omitempty,meeting_outcome"`
	NextFollowUp *string   `json:"next_follow_up" binding:"omitempty,datetime=2006-01-02"`
	Notes        string    `json:"notes"`
}

type UpdateMeetingRequest struct {
	Title        *string    `json:"title" binding:"omitempty,min=1,max=200"`
	ScheduledAt  *time.Time `json:"scheduled_at"`
	Location     *string    `json:"location" binding:"omitempty,max=200"`
	Agenda       *string    `json:"agenda"`
	Outcome      *string    `json:"outcome" binding:"omitempty,meeting_outcome"`
	NextFollowUp *string    `json:"next_follow_up" binding:"omitempty,datetime=2006-01-02"`
	Notes        *string    `json:"notes"`
}

// ============ Курсы (Courses) ============

type CourseResponse struct {
	ID            uint      `json:"id"`
	CollegeID     *uint     `json:"college_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	DurationHours int       `json:"duration_hours"`
	Capacity      int       `json:"capacity"`
	BasePrice     float64   `json:"base_price"`
	MinPrice      float64   `json:"min_price"`
	MaxPrice      float64   `json:"max_price"`
	Tags          []string  `json:"tags"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CourseListResponse struct {
	Courses  []CourseResponse `json:"courses"`
	Summary  SummaryResponse  `json:"summary"`
	Selected []uint           `json:"selected"`
}

type CreateCourseRequest struct {
	CollegeID     *uint    `json:"college_id"`
	Name          string   `json:"name" binding:"required,max=200"`
	Description   string   `json:"description"`
	Category      string   `json:"category" binding:"max=100"`
	DurationHours int      `json:"duration_hours" binding:"gte=0"`
	Capacity      int      `json:"capacity" binding:"gte=0"`
	BasePrice     float64  `json:"base_price" binding:"gte=0"`
	MinPrice      *float64 `json:"min_price" binding:"omitempty,gte=0"`
	MaxPrice      *float64 `json:"max_price" binding:"omitempty,gte=0"`
	Tags          []string `json:"tags"`
}

type UpdateCourseRequest struct {
	Name          *string   `json:"name" binding:"omitempty,min=1,max=200"`
	Description   *string   `json:"description"`
	Category      *string   `json:"category" binding:"omitempty,max=100"`
	DurationHours *int      `json:"duration_hours" binding:"omitempty,gte=0"`
	Capacity      *int      `json:"capacity" binding:"omitempty,gte=0"`
	BasePrice     *float64  `json:"base_price" binding:"omitempty,gte=0"`
	MinPrice      *float64  `json:"min_price" binding:"omitempty,gte=0"`
	MaxPrice      *float64  `json:"max_price" binding:"omitempty,gte=0"`
	Tags          *[]string `json:"tags"`
}

// ============ Темы курса (Course Topics) ============

type TopicResponse struct {
	ID         uint      `json:"id"`
	CourseID   uint      `json:"course_id"`
	OrderIndex int       `json:"order_index"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Source     string    `json:"source"`
	SourceURL  string    `json:"source_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CreateTopicRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content"`
}

type UpdateTopicRequest struct {
	Title   *string `json:"title" binding:"omitempty,min=1,max=200"`
	Content *string `json:"content"`
}

type ReorderTopicsRequest struct {
	TopicIDs []uint `json:"topic_ids" binding:"required,min=1,unique"`
}

// ============ Модели ценообразования (Pricing Models) ============

type PricingModelResponse struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Tier            string    `json:"tier"`
	BasePrice       float64   `json:"base_price"`
	MinPrice        float64   `json:"min_price"`
	MaxPrice        float64   `json:"max_price"`
	DiscountPercent float64   `json:"discount_percent"`
	MarkupPercent   float64   `json:"markup_percent"`
	Currency        string    `json:"currency"`
	EffectiveFrom   *string   `json:"effective_from"`
	EffectiveTo     *string   `json:"effective_to"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type PricingModelListResponse struct {
	PricingModels []PricingModelResponse `json:"pricing_models"`
	Summary       SummaryResponse        `json:"summary"`
	Selected      []uint                 `json:"selected"`
}

type CreatePricingModelRequest struct {
	Name            string   `json:"name" binding:"required,max=150"`
	Description     string   `json:"description"`
	Tier            string   `json:"tier" binding:"omitempty,pricing_tier"`
	BasePrice       float64  `json:"base_price" binding:"gte=0"`
	MinPrice        *float64 `json:"min_price" binding:"omitempty,gte=0"`
	MaxPrice        *float64 `json:"max_price" binding:"omitempty,gte=0"`
	DiscountPercent float64  `json:"discount_percent" binding:"gte=0,lte=100"`
	MarkupPercent   float64  `json:"markup_percent" binding:"gte=0"`
	Currency        string   `json:"currency" binding:"omitempty,len=3"`
	EffectiveFrom   *string  `json:"effective_from" binding:"omitempty,datetime=2006-01-02"`
	EffectiveTo     *string  `json:"effective_to" binding:"omitempty,datetime=2006-01-02"`
	IsActive        *bool    `json:"is_active"`
}

type UpdatePricingModelRequest struct {
	Name            *string  `json:"name" binding:"omitempty,min=1,max=150"`
	Description     *string  `json:"description"`
	Tier            *string  `json:"tier" binding:"omitempty,pricing_tier"`
	BasePrice       *float64 `json:"base_price" binding:"omitempty,gte=0"`
	MinPrice        *float64 `json:"min_price" binding:"omitempty,gte=0"`
	MaxPrice        *float64 `json:"max_price" binding:"omitempty,gte=0"`
	DiscountPercent *float64 `json:"discount_percent" binding:"omitempty,gte=0,lte=100"`
	MarkupPercent   *float64 `json:"markup_percent" binding:"omitempty,gte=0"`
	Currency        *string  `json:"currency" binding:"omitempty,len=3"`
	EffectiveFrom   *string  `json:"effective_from" binding:"omitempty,datetime=2006-01-02"`
	EffectiveTo     *string  `json:"effective_to" binding:"omitempty,datetime=2006-01-02"`
	IsActive        *bool    `json:"is_active"`
}

// ============ Массовое изменение цен (Bulk pricing) ============

// Пустой IDs означает текущий выбор пользователя.
// Value обязателен: без него set обнулил бы цены.
type BulkPriceRequest struct {
	Operation string   `json:"operation" binding:"required,price_operation"`
	Value     *float64 `json:"value" binding:"required,gte=0"`
	IDs       []uint   `json:"ids" binding:"omitempty,unique"`
}

type BulkPriceFailure struct {
	ID    uint   `json:"id"`
	Error string `json:"error"`
}

type BulkPriceResponse struct {
	BatchID   string             `json:"batch_id"`
	Operation string             `json:"operation"`
	Value     float64            `json:"value"`
	Succeeded []uint             `json:"succeeded"`
	Failed    []BulkPriceFailure `json:"failed"`
}

// ============ Выбор записей (Selections) ============

type SelectionRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

type ToggleSelectionRequest struct {
	ID uint `json:"id" binding:"required"`
}

type SelectionResponse struct {
	Scope    string `json:"scope"`
	Selected []uint `json:"selected"`
	Count    int    `json:"count"`
}

// ============ Сделки (Sales Deals) ============

type DealResponse struct {
	ID            uint      `json:"id"`
	CollegeID     uint      `json:"college_id"`
	Title         string    `json:"title"`
	Value         float64   `json:"value"`
	Currency      string    `json:"currency"`
	Probability   int       `json:"probability"`
	Stage         string    `json:"stage"`
	ExpectedClose *string   `json:"expected_close"`
	Notes         string    `json:"notes"`
	CreatedBy     *uint     `json:"created_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type DealListResponse struct {
	Deals   []DealResponse  `json:"deals"`
	Summary SummaryResponse `json:"summary"`
}

type CreateDealRequest struct {
	CollegeID     uint    `json:"college_id" binding:"required"`
	Title         string  `json:"title" binding:"required,max=200"`
	Value         float64 `json:"value" binding:"gte=0"`
	Currency      string  `json:"currency" binding:"omitempty,len=3"`
	Probability   int     `json:"probability" binding:"gte=0,lte=100"`
	Stage         string  `json:"stage" binding:"omitempty,deal_stage"`
	ExpectedClose *string `json:"expected_close" binding:"omitempty,datetime=2006-01-02"`
	Notes         string  `json:"notes"`
}

type UpdateDealRequest struct {
	Title         *string  `json:"title" binding:"omitempty,min=1,max=200"`
	Value         *float64 `json:"value" binding:"omitempty,gte=0"`
	Currency      *string  `json:"currency" binding:"omitempty,len=3"`
	Probability   *int     `json:"probability" binding:"omitempty,gte=0,lte=100"`
	Stage         *string  `json:"stage" binding:"omitempty,deal_stage"`
	ExpectedClose *string  `json:"expected_close" binding:"omitempty,datetime=2006-01-02"`
	Notes         *string  `json:"notes"`
}

// ============ Дашборд и поиск ============

type DashboardResponse struct {
	Colleges         int                `json:"colleges"`
	Contacts         int64              `json:"contacts"`
	Courses          int                `json:"courses"`
	PricingModels    int                `json:"pricing_models"`
	ActivePricing    int                `json:"active_pricing_models"`
	CollegesByStatus map[string]int     `json:"colleges_by_status"`
	DealsByStage     []CategoryResponse `json:"deals_by_stage"`
	PipelineValue    float64            `json:"pipeline_value"`
	WeightedPipeline float64            `json:"weighted_pipeline"`
	WonValue         float64            `json:"won_value"`
	CollegeGrowth    float64            `json:"college_growth"`
	DealGrowth       float64            `json:"deal_growth"`
	CoursePrices     SummaryResponse    `json:"course_prices"`
	UpcomingMeetings []MeetingResponse  `json:"upcoming_meetings"`
	DueFollowUps     []MeetingResponse  `json:"due_follow_ups"`
}

type SearchResponse struct {
	Query    string            `json:"query"`
	Colleges []CollegeResponse `json:"colleges"`
	Contacts []ContactResponse `json:"contacts"`
	Courses  []CourseResponse  `json:"courses"`
}

// ============ Журнал аудита ============

type AuditLogResponse struct {
	ID        uint        `json:"id"`
	Table     string      `json:"table_name"`
	RowID     uint        `json:"row_id"`
	Action    string      `json:"action"`
	OldValue  interface{} `json:"old_value,omitempty"`
	NewValue  interface{} `json:"new_value,omitempty"`
	UserID    *uint       `json:"user_id,omitempty"`
	BatchID   *string     `json:"batch_id,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// ============ Пользователи (Users) ============

type UserResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=viewer sales admin"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresIn int          `json:"expires_in"`
	User      UserResponse `json:"user"`
}
