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

package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	settingsprovider "github.com/rodrigorochameire-prog/Defender-sub003/internal/settings/provider"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/config"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/constants"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/database/mongo"
	dbprovider "github.com/rodrigorochameire-prog/Defender-sub003/internal/system/database/provider"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/log"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/managers"
)

const configFile = "/repository/conf/deployment.yaml"

const schemaFile = "/dbscripts/postgres/schema.sql"

func main() {
	engineHome := getEngineHome()

	envFiles, _ := filepath.Glob("config/*.env")
	_ = godotenv.Load(envFiles...)

	// Load the configuration file.
	engineConfig, err := config.LoadConfig(engineHome, configFile)
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize runtime configurations.
	if err := config.InitializeEngineRuntime(engineHome, engineConfig); err != nil {
		stdlog.Fatalf("Failed to initialize engine runtime: %v", err)
	}

	// Initialize logger.
	if err := log.Init(engineConfig.Log.LogLevel); err != nil {
		stdlog.Fatalf("Failed to initialize logger: %v", err)
	}
	logger := log.GetLogger()

	// Initialize the relational store and seed the default settings.
	initDatabase(engineHome)

	// Connect the execution log store.
	if _, err := mongo.Connect(engineConfig.Mongo.URI, engineConfig.Mongo.Database); err != nil {
		logger.Fatal("Failed to connect to MongoDB", log.Error(err))
	}

	serverAddr := fmt.Sprintf("%s:%d", engineConfig.Addr.Host, engineConfig.Addr.Port)
	mux := enableCORS(initMultiplexer(), engineConfig.Auth.CORSAllowedOrigins)

	ln, err := net.Listen("tcp", serverAddr)
	if err != nil {
		logger.Fatal("Failed to start listener", log.Error(err))
	}

	logger.Info("Rule engine started", log.String("address", serverAddr))

	server := &http.Server{Handler: mux}
	if err := server.Serve(ln); err != nil {
		logger.Fatal("Failed to serve requests", log.Error(err))
	}
}

// initDatabase applies the schema and seeds the well-known settings.
func initDatabase(engineHome string) {

	logger := log.GetLogger()

	dbClient, err := dbprovider.NewDBProvider().GetDBClient()
	if err != nil {
		logger.Fatal("Failed to connect to database", log.Error(err))
	}
	defer dbClient.Close()

	if err := dbClient.InitDatabase(engineHome, schemaFile); err != nil {
		logger.Fatal("Failed to initialize database schema", log.Error(err))
	}

	if err := settingsprovider.NewSettingsProvider().GetSettingsService().SeedDefaults(); err != nil {
		logger.Fatal("Failed to seed default settings", log.Error(err))
	}
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer() *http.ServeMux {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux)

	if err := serviceManager.RegisterServices(constants.ApiBasePath); err != nil {
		log.GetLogger().Fatal("Failed to register the services", log.Error(err))
	}

	return mux
}

func enableCORS(next http.Handler, allowedOrigins []string) http.Handler {

	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowed["*"] {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		} else if allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func getEngineHome() string {

	projectHomeFlag := flag.String("engineHome", "", "Path to the rule engine home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		return *projectHomeFlag
	}

	dir, err := os.Getwd()
	if err != nil {
		stdlog.Fatalf("Failed to get current working directory: %v", err)
	}
	return dir
}
