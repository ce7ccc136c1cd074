// README: User account types and role-to-service access map.
package user

import (
	"errors"

	"github.com/AdityaBS04/GrabHackProper-sub001/internal/types"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type User struct {
	ID               int64
	Username         string
	UserType         types.ActorRole
	CredibilityScore int
}

// servicesByRole is which verticals each role can act on.
var servicesByRole = map[types.ActorRole][]types.Service{
	types.RoleCustomer:      {types.ServiceFood, types.ServiceCabs, types.ServiceMart, types.ServiceExpress},
	types.RoleDeliveryAgent: {types.ServiceFood, types.ServiceMart, types.ServiceExpress},
	types.RoleRestaurant:    {types.ServiceFood},
	types.RoleDriver:        {types.ServiceCabs},
	types.RoleDarkHouse:     {types.ServiceMart},
}

// ServicesFor returns the verticals a role may act on; nil for unknown roles.
func ServicesFor(role types.ActorRole) []types.Service {
	return servicesByRole[role]
}
