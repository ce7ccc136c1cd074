// README: Static complaint registry: (service, role, sub-issue) -> kind metadata.
package complaint

import (
	"fmt"

	"github.com/AdityaBS04/GrabHackProper-sub001/internal/types"
)

// Kind is the metadata the pipeline needs about one complaint sub-issue. The
// registry is built once at init so every supported route is visible at
// startup instead of failing on first use.
type Kind struct {
	Category string
	// ImageRequired complaints short-circuit with a photo request when no
	// image is supplied.
	ImageRequired bool
	// QualityKind complaints pass through the order lifecycle gate.
	QualityKind bool
	// SafetyCritical complaints always escalate to manual review.
	SafetyCritical bool
	// Navigation complaints get maps-assisted guidance instead of the
	// resolution pipeline.
	Navigation bool
}

type registryKey struct {
	service types.Service
	role    types.ActorRole
	sub     string
}

var registry = map[registryKey]Kind{}

func register(services []types.Service, role types.ActorRole, sub string, k Kind) {
	for _, svc := range services {
		registry[registryKey{svc, role, sub}] = k
	}
}

var (
	foodMart     = []types.Service{types.ServiceFood, types.ServiceMart}
	foodMartExpr = []types.Service{types.ServiceFood, types.ServiceMart, types.ServiceExpress}
	allServices  = []types.Service{types.ServiceFood, types.ServiceMart, types.ServiceCabs, types.ServiceExpress}
	cabsOnly     = []types.Service{types.ServiceCabs}
)

func init() {
	// Customer: quality/possession kinds (image-backed, gated).
	register(foodMartExpr, types.RoleCustomer, "missing_items", Kind{Category: "order_quality", ImageRequired: true, QualityKind: true})
	register(foodMartExpr, types.RoleCustomer, "wrong_item", Kind{Category: "order_quality", ImageRequired: true, QualityKind: true})
	register(foodMart, types.RoleCustomer, "quality_issues", Kind{Category: "order_quality", ImageRequired: true, QualityKind: true})
	register(foodMart, types.RoleCustomer, "spillage", Kind{Category: "order_quality", ImageRequired: true, QualityKind: true})
	register(foodMart, types.RoleCustomer, "temperature_issues", Kind{Category: "order_quality", ImageRequired: true, QualityKind: true})
	register(foodMart, types.RoleCustomer, "quantity_mismatch", Kind{Category: "order_quality", ImageRequired: true, QualityKind: true})
	register([]types.Service{types.ServiceMart}, types.RoleCustomer, "expired_damaged_items", Kind{Category: "order_quality", ImageRequired: true, QualityKind: true})
	register(foodMartExpr, types.RoleCustomer, "partial_delivery", Kind{Category: "order_quality", ImageRequired: true, QualityKind: true})

	// Safety-impacting kinds: always escalate.
	register(foodMartExpr, types.RoleCustomer, "package_tampering", Kind{Category: "safety", ImageRequired: true, QualityKind: true, SafetyCritical: true})
	register(foodMart, types.RoleCustomer, "allergen_mismatch", Kind{Category: "safety", ImageRequired: true, QualityKind: true, SafetyCritical: true})
	register(allServices, types.RoleCustomer, "harassment", Kind{Category: "safety", SafetyCritical: true})
	register(cabsOnly, types.RoleCustomer, "safety_concerns", Kind{Category: "safety", ImageRequired: true, SafetyCritical: true})

	// Customer: text-only kinds (bypass the gate).
	register(allServices, types.RoleCustomer, "substitution_issues", Kind{Category: "order_quality"})
	register(allServices, types.RoleCustomer, "double_charge", Kind{Category: "payment_refund"})
	register(allServices, types.RoleCustomer, "refund_delays", Kind{Category: "payment_refund"})
	register(allServices, types.RoleCustomer, "payment_method_issues", Kind{Category: "payment_refund"})
	register(allServices, types.RoleCustomer, "app_technical_issues", Kind{Category: "technical"})
	register(allServices, types.RoleCustomer, "delivery_delays", Kind{Category: "delivery_experience"})
	register(allServices, types.RoleCustomer, "long_wait_times", Kind{Category: "delivery_experience"})
	register(allServices, types.RoleCustomer, "promo_discount_issues", Kind{Category: "payment_refund"})
	register(allServices, types.RoleCustomer, "driver_misconduct", Kind{Category: "driver_interaction", ImageRequired: true})
	register(cabsOnly, types.RoleCustomer, "vehicle_condition", Kind{Category: "driver_interaction", ImageRequired: true})
	register(cabsOnly, types.RoleCustomer, "surge_pricing", Kind{Category: "payment_refund"})

	// Delivery agent.
	register(foodMartExpr, types.RoleDeliveryAgent, "navigation_issues", Kind{Category: "navigation_location", Navigation: true})
	register(foodMartExpr, types.RoleDeliveryAgent, "address_issues", Kind{Category: "navigation_location", Navigation: true})
	register(foodMartExpr, types.RoleDeliveryAgent, "vehicle_breakdown", Kind{Category: "operational", ImageRequired: true})
	register(foodMartExpr, types.RoleDeliveryAgent, "app_technical_issues", Kind{Category: "technical"})
	register(foodMartExpr, types.RoleDeliveryAgent, "payment_issues", Kind{Category: "payment_refund"})

	// Driver (cabs).
	register(cabsOnly, types.RoleDriver, "passenger_misconduct", Kind{Category: "passenger_interaction", ImageRequired: true})
	register(cabsOnly, types.RoleDriver, "vehicle_damage", Kind{Category: "operational", ImageRequired: true})
	register(cabsOnly, types.RoleDriver, "navigation_issues", Kind{Category: "navigation_location", Navigation: true})

	// Restaurant.
	register([]types.Service{types.ServiceFood}, types.RoleRestaurant, "wrong_order_prep", Kind{Category: "order_management", ImageRequired: true})
	register([]types.Service{types.ServiceFood}, types.RoleRestaurant, "food_safety_violation", Kind{Category: "safety", ImageRequired: true, SafetyCritical: true})
	register([]types.Service{types.ServiceFood}, types.RoleRestaurant, "order_volume_issues", Kind{Category: "operational"})

	// Dark store.
	register([]types.Service{types.ServiceMart}, types.RoleDarkHouse, "product_quality_control", Kind{Category: "inventory", ImageRequired: true})
	register([]types.Service{types.ServiceMart}, types.RoleDarkHouse, "temperature_control", Kind{Category: "inventory", ImageRequired: true})
	register([]types.Service{types.ServiceMart}, types.RoleDarkHouse, "stock_shortage", Kind{Category: "inventory"})
}

// Lookup resolves a complaint route. Unknown routes are validation errors.
func Lookup(service types.Service, role types.ActorRole, subIssue string) (Kind, error) {
	k, ok := registry[registryKey{service, role, subIssue}]
	if !ok {
		return Kind{}, fmt.Errorf("%w: %s/%s/%s", ErrUnknownRoute, service, role, subIssue)
	}
	return k, nil
}
