// README: Common enums and value objects shared across modules.
package types

// Service identifies one vertical of the platform.
type Service string

const (
	ServiceFood    Service = "grab_food"
	ServiceMart    Service = "grab_mart"
	ServiceCabs    Service = "grab_cabs"
	ServiceExpress Service = "grab_express"
)

// Known reports whether s is one of the supported services.
func (s Service) Known() bool {
	switch s {
	case ServiceFood, ServiceMart, ServiceCabs, ServiceExpress:
		return true
	}
	return false
}

// ActorRole identifies the kind of participant acting on an order.
type ActorRole string

const (
	RoleCustomer      ActorRole = "customer"
	RoleDriver        ActorRole = "driver"
	RoleDeliveryAgent ActorRole = "delivery_agent"
	RoleRestaurant    ActorRole = "restaurant"
	RoleDarkHouse     ActorRole = "dark_house"
)

// Known reports whether r is one of the supported roles.
func (r ActorRole) Known() bool {
	switch r {
	case RoleCustomer, RoleDriver, RoleDeliveryAgent, RoleRestaurant, RoleDarkHouse:
		return true
	}
	return false
}

// Money is an amount in the order's currency, in cents.
type Money struct {
	Amount   int64
	Currency string
}
