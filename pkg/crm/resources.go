package crm

// ResourceDescriptor names a resource kind on both API surfaces.
type ResourceDescriptor struct {
	// EntitySet is the PascalCase OData entity set, e.g. "ProductCategory".
	EntitySet string
	// Path is the REST segment under /api, e.g. "productcategory".
	Path string
}

// ODataPath returns the collection path, e.g. "/odata/ProductCategory".
func (d ResourceDescriptor) ODataPath() string {
	return "/odata/" + d.EntitySet
}

// RESTPath returns the collection path, e.g. "/api/productcategory".
func (d ResourceDescriptor) RESTPath() string {
	return "/api/" + d.Path
}

// Resource descriptors for every kind the API exposes.
var (
	ResourceUser            = ResourceDescriptor{EntitySet: "User", Path: "user"}
	ResourceCustomer        = ResourceDescriptor{EntitySet: "Customer", Path: "customer"}
	ResourceAddress         = ResourceDescriptor{EntitySet: "Address", Path: "address"}
	ResourceProductCategory = ResourceDescriptor{EntitySet: "ProductCategory", Path: "productcategory"}
	ResourceServiceCategory = ResourceDescriptor{EntitySet: "ServiceCategory", Path: "servicecategory"}
	ResourceContact         = ResourceDescriptor{EntitySet: "Contact", Path: "contact"}
	ResourceOpportunity     = ResourceDescriptor{EntitySet: "Opportunity", Path: "opportunity"}
	ResourceLead            = ResourceDescriptor{EntitySet: "Lead", Path: "lead"}
	ResourceProduct         = ResourceDescriptor{EntitySet: "Product", Path: "product"}
	ResourceService         = ResourceDescriptor{EntitySet: "Service", Path: "service"}
	ResourceSale            = ResourceDescriptor{EntitySet: "Sale", Path: "sale"}
	ResourceVendor          = ResourceDescriptor{EntitySet: "Vendor", Path: "vendor"}
	ResourceSupportCase     = ResourceDescriptor{EntitySet: "SupportCase", Path: "supportcase"}
	ResourceTodoTask        = ResourceDescriptor{EntitySet: "TodoTask", Path: "todotask"}
	ResourceReward          = ResourceDescriptor{EntitySet: "Reward", Path: "reward"}
)

// ApplicationUser is the list shape of the user resource.
type ApplicationUser struct {
	ID          *string `json:"id,omitempty"          yaml:"id,omitempty"`
	Email       *string `json:"email,omitempty"       yaml:"email,omitempty"`
	UserName    *string `json:"userName,omitempty"    yaml:"userName,omitempty"`
	FirstName   *string `json:"firstName,omitempty"   yaml:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"    yaml:"lastName,omitempty"`
	Title       *string `json:"title,omitempty"       yaml:"title,omitempty"`
	CompanyName *string `json:"companyName,omitempty" yaml:"companyName,omitempty"`
	Photo       *string `json:"photo,omitempty"       yaml:"photo,omitempty"`
}

// ApplicationUserWithRoles is the single-user shape, which carries role names.
type ApplicationUserWithRoles struct {
	ApplicationUser `yaml:",inline"`

	Roles []string `json:"roles,omitempty" yaml:"roles,omitempty"`
}

// Customer record.
type Customer struct {
	ID        *int64  `json:"id,omitempty"        yaml:"id,omitempty"`
	Name      *string `json:"name,omitempty"      yaml:"name,omitempty"`
	Email     *string `json:"email,omitempty"     yaml:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"     yaml:"phone,omitempty"`
	Company   *string `json:"company,omitempty"   yaml:"company,omitempty"`
	AddressID *int64  `json:"addressId,omitempty" yaml:"addressId,omitempty"`
	Notes     *string `json:"notes,omitempty"     yaml:"notes,omitempty"`
}

// Address record.
type Address struct {
	ID         *int64  `json:"id,omitempty"         yaml:"id,omitempty"`
	Street     *string `json:"street,omitempty"     yaml:"street,omitempty"`
	City       *string `json:"city,omitempty"       yaml:"city,omitempty"`
	State      *string `json:"state,omitempty"      yaml:"state,omitempty"`
	PostalCode *string `json:"postalCode,omitempty" yaml:"postalCode,omitempty"`
	Country    *string `json:"country,omitempty"    yaml:"country,omitempty"`
}

// ProductCategory record.
type ProductCategory struct {
	ID          *int64  `json:"id,omitempty"          yaml:"id,omitempty"`
	Name        *string `json:"name,omitempty"        yaml:"name,omitempty"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
}

// ServiceCategory record.
type ServiceCategory struct {
	ID          *int64  `json:"id,omitempty"          yaml:"id,omitempty"`
	Name        *string `json:"name,omitempty"        yaml:"name,omitempty"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Contact record.
type Contact struct {
	ID         *int64  `json:"id,omitempty"         yaml:"id,omitempty"`
	CustomerID *int64  `json:"customerId,omitempty" yaml:"customerId,omitempty"`
	FirstName  *string `json:"firstName,omitempty"  yaml:"firstName,omitempty"`
	LastName   *string `json:"lastName,omitempty"   yaml:"lastName,omitempty"`
	Email      *string `json:"email,omitempty"      yaml:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"      yaml:"phone,omitempty"`
	Position   *string `json:"position,omitempty"   yaml:"position,omitempty"`
}

// Opportunity record.
type Opportunity struct {
	ID                *int64    `json:"id,omitempty"                yaml:"id,omitempty"`
	CustomerID        *int64    `json:"customerId,omitempty"        yaml:"customerId,omitempty"`
	UserID            *string   `json:"userId,omitempty"            yaml:"userId,omitempty"`
	Name              *string   `json:"name,omitempty"              yaml:"name,omitempty"`
	Amount            *float64  `json:"amount,omitempty"            yaml:"amount,omitempty"`
	Stage             *string   `json:"stage,omitempty"             yaml:"stage,omitempty"`
	Probability       *float64  `json:"probability,omitempty"       yaml:"probability,omitempty"`
	ExpectedCloseDate *DateTime `json:"expectedCloseDate,omitempty" yaml:"expectedCloseDate,omitempty"`
}

// Lead record.
type Lead struct {
	ID        *int64    `json:"id,omitempty"        yaml:"id,omitempty"`
	Name      *string   `json:"name,omitempty"      yaml:"name,omitempty"`
	Email     *string   `json:"email,omitempty"     yaml:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"     yaml:"phone,omitempty"`
	Company   *string   `json:"company,omitempty"   yaml:"company,omitempty"`
	Source    *string   `json:"source,omitempty"    yaml:"source,omitempty"`
	Status    *string   `json:"status,omitempty"    yaml:"status,omitempty"`
	CreatedAt *DateTime `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// Product record.
type Product struct {
	ID                *int64   `json:"id,omitempty"                yaml:"id,omitempty"`
	ProductCategoryID *int64   `json:"productCategoryId,omitempty" yaml:"productCategoryId,omitempty"`
	VendorID          *int64   `json:"vendorId,omitempty"          yaml:"vendorId,omitempty"`
	Name              *string  `json:"name,omitempty"              yaml:"name,omitempty"`
	Description       *string  `json:"description,omitempty"       yaml:"description,omitempty"`
	Price             *float64 `json:"price,omitempty"             yaml:"price,omitempty"`
	Stock             *int64   `json:"stock,omitempty"             yaml:"stock,omitempty"`
	Picture           *string  `json:"picture,omitempty"           yaml:"picture,omitempty"`
}

// Service record.
type Service struct {
	ID                *int64   `json:"id,omitempty"                yaml:"id,omitempty"`
	ServiceCategoryID *int64   `json:"serviceCategoryId,omitempty" yaml:"serviceCategoryId,omitempty"`
	Name              *string  `json:"name,omitempty"              yaml:"name,omitempty"`
	Description       *string  `json:"description,omitempty"       yaml:"description,omitempty"`
	Price             *float64 `json:"price,omitempty"             yaml:"price,omitempty"`
}

// Sale record. ProductID and ServiceID are strings on the wire.
type Sale struct {
	ID           *int64    `json:"id,omitempty"           yaml:"id,omitempty"`
	ProductID    *string   `json:"productId,omitempty"    yaml:"productId,omitempty"`
	ServiceID    *string   `json:"serviceId,omitempty"    yaml:"serviceId,omitempty"`
	CustomerID   *int64    `json:"customerId,omitempty"   yaml:"customerId,omitempty"`
	Quantity     *int64    `json:"quantity,omitempty"     yaml:"quantity,omitempty"`
	TotalAmount  *float64  `json:"totalAmount,omitempty"  yaml:"totalAmount,omitempty"`
	SaleDate     *DateTime `json:"saleDate,omitempty"     yaml:"saleDate,omitempty"`
	ReceiptPhoto *string   `json:"receiptPhoto,omitempty" yaml:"receiptPhoto,omitempty"`
	Notes        *string   `json:"notes,omitempty"        yaml:"notes,omitempty"`
}

// Vendor record.
type Vendor struct {
	ID          *int64  `json:"id,omitempty"          yaml:"id,omitempty"`
	Name        *string `json:"name,omitempty"        yaml:"name,omitempty"`
	ContactName *string `json:"contactName,omitempty" yaml:"contactName,omitempty"`
	Email       *string `json:"email,omitempty"       yaml:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"       yaml:"phone,omitempty"`
	Website     *string `json:"website,omitempty"     yaml:"website,omitempty"`
}

// SupportCase record.
type SupportCase struct {
	ID          *int64    `json:"id,omitempty"          yaml:"id,omitempty"`
	CustomerID  *int64    `json:"customerId,omitempty"  yaml:"customerId,omitempty"`
	UserID      *string   `json:"userId,omitempty"      yaml:"userId,omitempty"`
	Subject     *string   `json:"subject,omitempty"     yaml:"subject,omitempty"`
	Description *string   `json:"description,omitempty" yaml:"description,omitempty"`
	Priority    *string   `json:"priority,omitempty"    yaml:"priority,omitempty"`
	Status      *string   `json:"status,omitempty"      yaml:"status,omitempty"`
	OpenedAt    *DateTime `json:"openedAt,omitempty"    yaml:"openedAt,omitempty"`
	ClosedAt    *DateTime `json:"closedAt,omitempty"    yaml:"closedAt,omitempty"`
}

// TodoTask record.
type TodoTask struct {
	ID            *int64    `json:"id,omitempty"            yaml:"id,omitempty"`
	UserID        *string   `json:"userId,omitempty"        yaml:"userId,omitempty"`
	OpportunityID *int64    `json:"opportunityId,omitempty" yaml:"opportunityId,omitempty"`
	Title         *string   `json:"title,omitempty"         yaml:"title,omitempty"`
	Description   *string   `json:"description,omitempty"   yaml:"description,omitempty"`
	DueDate       *DateTime `json:"dueDate,omitempty"       yaml:"dueDate,omitempty"`
	Completed     *bool     `json:"completed,omitempty"     yaml:"completed,omitempty"`
}

// Reward record.
type Reward struct {
	ID          *int64    `json:"id,omitempty"          yaml:"id,omitempty"`
	CustomerID  *int64    `json:"customerId,omitempty"  yaml:"customerId,omitempty"`
	Points      *int64    `json:"points,omitempty"      yaml:"points,omitempty"`
	Description *string   `json:"description,omitempty" yaml:"description,omitempty"`
	AwardedAt   *DateTime `json:"awardedAt,omitempty"   yaml:"awardedAt,omitempty"`
}
