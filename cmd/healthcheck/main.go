// main.go
//
// Lead capture, notification and admin backend for the leaddesk marketing site
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of leaddesk.
// leaddesk is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// leaddesk is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with leaddesk.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// Command healthcheck is the container probe. It exits non-zero only when
// the service is unhealthy; a degraded mail relay still passes.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/forgeline/leaddesk/internal/config"
	"github.com/forgeline/leaddesk/internal/database"
	"github.com/forgeline/leaddesk/internal/services"
	"github.com/forgeline/leaddesk/internal/utils"
	"github.com/powerman/structlog"
)

var log = structlog.New(structlog.KeyUnit, "healthcheck")

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	utils.InitLog(true)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	result := services.HealthCheck(ctx, cfg, db)
	cancel()
	log.ErrIfFail(func() error { return database.Close(db) })

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}

	fmt.Println(string(output))

	if result.Status == services.StatusUnhealthy {
		os.Exit(1)
	}
}
