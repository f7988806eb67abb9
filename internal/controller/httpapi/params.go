package httpapi

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Freeeeeet/clinic_frontdesk/internal/grouping"
	"github.com/Freeeeeet/clinic_frontdesk/internal/schedule"
)

// defaultDuration длительность приёма по умолчанию
const defaultDuration = schedule.SlotStep

// groupingConfig накладывает sortBy, sortOrder и showEmpty на конфиг по умолчанию
func groupingConfig(c echo.Context, cfg grouping.Config) (grouping.Config, error) {
	switch sortBy := grouping.SortBy(c.QueryParam("sortBy")); sortBy {
	case "":
	case grouping.SortAlphabetical, grouping.SortByCount, grouping.SortCustom:
		cfg.SortBy = sortBy
	default:
		return cfg, fmt.Errorf("unknown sortBy %q", sortBy)
	}

	switch order := grouping.SortOrder(c.QueryParam("sortOrder")); order {
	case "":
	case grouping.SortAsc, grouping.SortDesc:
		cfg.SortOrder = order
	default:
		return cfg, fmt.Errorf("unknown sortOrder %q", order)
	}

	if raw := c.QueryParam("showEmpty"); raw != "" {
		show, err := strconv.ParseBool(raw)
		if err != nil {
			return cfg, fmt.Errorf("invalid showEmpty: %w", err)
		}
		cfg.ShowEmptyGroups = show
	}

	return cfg, nil
}
