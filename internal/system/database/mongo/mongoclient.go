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

package mongo

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rodrigorochameire-prog/Defender-sub003/internal/system/log"
)

// MongoDB holds the client and the selected database.
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var (
	mongoInstance *MongoDB
	once          sync.Once
)

// Connect initializes the global MongoDB connection used for the execution log.
func Connect(uri, dbName string) (*MongoDB, error) {

	var connectErr error
	once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			connectErr = err
			return
		}

		// Ping to ensure the connection is live.
		if err := client.Ping(ctx, nil); err != nil {
			connectErr = err
			return
		}

		log.GetLogger().Info("Connected to MongoDB", log.String("database", dbName))

		mongoInstance = &MongoDB{
			Client:   client,
			Database: client.Database(dbName),
		}
	})

	return mongoInstance, connectErr
}

// GetInstance returns the MongoDB instance, nil when Connect has not run.
func GetInstance() *MongoDB {
	return mongoInstance
}

// SetTestDatabase points the singleton at an externally managed database.
// Used by the integration test harness.
func SetTestDatabase(db *mongo.Database) {
	mongoInstance = &MongoDB{
		Client:   db.Client(),
		Database: db,
	}
}
