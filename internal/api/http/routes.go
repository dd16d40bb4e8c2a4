package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/routewise/flight-advisor/internal/airports"
	"github.com/routewise/flight-advisor/internal/planning"
	"github.com/routewise/flight-advisor/internal/store"
)

var validate = validator.New()

// API bundles the decision components the handlers dispatch to.
type API struct {
	Fuel       *planning.FuelEconomicsEngine
	Wind       *planning.RouteWindOptimizer
	Turbulence *planning.TurbulenceRiskAssessor
	Airports   *airports.Directory
	Store      *store.MemoryStore
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, api API) {
	v1 := app.Group("/api/v1")

	v1.Get("/fuel/compare", func(c *fiber.Ctx) error {
		var req routeQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		cmp := api.Fuel.ComparePrices(c.UserContext(), req.Origin, req.Destination)
		if cmp == nil {
			return fiber.NewError(fiber.StatusNotFound, "no fuel price data for requested airports")
		}
		return c.JSON(cmp)
	})

	v1.Get("/fuel/tankering", func(c *fiber.Ctx) error {
		var req tankeringQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		distance := req.DistanceNm
		if distance == 0 {
			var err error
			distance, err = api.routeDistance(req.Origin, req.Destination)
			if err != nil {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
		}

		plan := api.Fuel.PlanTankering(c.UserContext(), req.Origin, req.Destination, req.Aircraft, distance)
		if plan == nil {
			return fiber.NewError(fiber.StatusNotFound, "missing fuel price or aircraft data for tankering evaluation")
		}
		return c.JSON(plan)
	})

	v1.Get("/fuel/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		points := api.Fuel.PriceHistory(c.UserContext(), req.Airport, req.Days)
		return c.JSON(fiber.Map{
			"airport": req.Airport,
			"days":    req.Days,
			"points":  points,
		})
	})

	v1.Get("/route/winds", func(c *fiber.Ctx) error {
		var req routeQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		origin, destination, err := api.routeEndpoints(req.Origin, req.Destination)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}

		analysis, err := api.Wind.AnalyzeRouteWinds(c.UserContext(), origin, destination)
		if err != nil {
			// Wind data is essential; surface the failure instead of guessing.
			return fiber.NewError(fiber.StatusBadGateway, "wind data unavailable: "+err.Error())
		}
		return c.JSON(analysis)
	})

	v1.Get("/route/turbulence", func(c *fiber.Ctx) error {
		var req turbulenceQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		origin, destination, err := api.routeEndpoints(req.Origin, req.Destination)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}

		assessment := api.Turbulence.DetectTurbulence(c.UserContext(), origin, destination, req.AltitudeFt)
		return c.JSON(assessment)
	})

	v1.Get("/route/detour", func(c *fiber.Ctx) error {
		var req detourQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		zone, err := api.Store.GetTurbulenceZone(c.UserContext(), req.Zone)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "unknown turbulence zone")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load turbulence zone")
		}

		aircraft, err := api.Store.GetAircraftProfile(c.UserContext(), req.Aircraft)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "unknown aircraft type")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load aircraft profile")
		}

		estimate := api.Turbulence.EstimateDetourCost(zone, req.DistanceNm, aircraft.FuelBurnPerNm)
		return c.JSON(estimate)
	})
}

// routeEndpoints resolves both airport codes to coordinates.
func (api API) routeEndpoints(origin, destination string) (planning.Coordinates, planning.Coordinates, error) {
	o, err := api.Airports.Coordinates(origin)
	if err != nil {
		return planning.Coordinates{}, planning.Coordinates{}, err
	}
	d, err := api.Airports.Coordinates(destination)
	if err != nil {
		return planning.Coordinates{}, planning.Coordinates{}, err
	}
	return o, d, nil
}

// routeDistance computes the great-circle leg length between two airports.
func (api API) routeDistance(origin, destination string) (float64, error) {
	o, d, err := api.routeEndpoints(origin, destination)
	if err != nil {
		return 0, err
	}
	return planning.GreatCircleDistanceNm(o.Latitude, o.Longitude, d.Latitude, d.Longitude), nil
}

// routeQuery holds the origin/destination pair most endpoints take.
type routeQuery struct {
	Origin      string `validate:"required,len=3"`
	Destination string `validate:"required,len=3"`
}

func (r *routeQuery) bind(c *fiber.Ctx) error {
	r.Origin = c.Query("origin")
	r.Destination = c.Query("destination")
	return validate.Struct(r)
}

// tankeringQuery adds the aircraft type and optional leg distance.
type tankeringQuery struct {
	routeQuery
	Aircraft   string  `validate:"required"`
	DistanceNm float64 `validate:"gte=0"`
}

func (t *tankeringQuery) bind(c *fiber.Ctx) error {
	if err := t.routeQuery.bind(c); err != nil {
		return err
	}
	t.Aircraft = c.Query("aircraft")

	if s := c.Query("distanceNm"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return errors.New("invalid distanceNm; must be a number")
		}
		t.DistanceNm = v
	}
	return validate.Struct(t)
}

// historyQuery holds query parameters for the price history endpoint.
type historyQuery struct {
	Airport string `validate:"required,len=3"`
	Days    int    `validate:"gte=1,lte=365"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	h.Airport = c.Query("airport")
	h.Days = 30
	if s := c.Query("days"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return errors.New("invalid days; must be an integer")
		}
		h.Days = v
	}
	return validate.Struct(h)
}

// turbulenceQuery adds the cruise altitude to the route pair.
type turbulenceQuery struct {
	routeQuery
	AltitudeFt int `validate:"gte=10000,lte=50000"`
}

func (t *turbulenceQuery) bind(c *fiber.Ctx) error {
	if err := t.routeQuery.bind(c); err != nil {
		return err
	}
	t.AltitudeFt = 37000
	if s := c.Query("altitudeFt"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return errors.New("invalid altitudeFt; must be an integer")
		}
		t.AltitudeFt = v
	}
	return validate.Struct(t)
}

// detourQuery identifies a zone and the aircraft detouring around it.
type detourQuery struct {
	Zone       string  `validate:"required"`
	Aircraft   string  `validate:"required"`
	DistanceNm float64 `validate:"gte=0"`
}

func (d *detourQuery) bind(c *fiber.Ctx) error {
	d.Zone = c.Query("zone")
	d.Aircraft = c.Query("aircraft")
	if s := c.Query("distanceNm"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return errors.New("invalid distanceNm; must be a number")
		}
		d.DistanceNm = v
	}
	return validate.Struct(d)
}
