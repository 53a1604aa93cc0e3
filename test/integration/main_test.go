/*
 * Copyright (c) 2025-2026, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/config"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/database/mongo"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/database/provider"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/log"
	"github.com/rodrigorochameire-prog/Defender-sub003/test/setup"
)

var testPG *setup.TestPostgres

func TestMain(m *testing.M) {
	ctx := context.Background()
	os.Setenv("TEST_MODE", "true")

	conf := config.Config{
		Log: config.LogConfig{
			LogLevel: "DEBUG",
		},
		Engine: config.EngineConfig{
			ActionTimeoutSeconds: 30,
			RuleCacheTTLSeconds:  1,
			HistoryDefaultLimit:  100,
		},
	}
	config.OverrideEngineRuntime(conf)
	_ = log.Init("DEBUG")

	pg, err := setup.SetupTestPostgres(ctx, "../../dbscripts/postgres/schema.sql")
	if err != nil {
		fmt.Println("Failed to start test Postgres:", err)
		os.Exit(1)
	}
	testPG = pg
	provider.SetTestDB(pg.DB)

	mg, err := setup.SetupTestMongo(ctx)
	if err != nil {
		fmt.Println("Failed to start test MongoDB:", err)
		_ = pg.Container.Terminate(ctx)
		os.Exit(1)
	}
	mongo.SetTestDatabase(mg.Database)

	code := m.Run()

	_ = pg.Container.Terminate(ctx)
	_ = mg.Container.Terminate(ctx)

	os.Exit(code)
}
