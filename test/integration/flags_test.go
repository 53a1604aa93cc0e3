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
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrigorochameire-prog/Defender-sub003/internal/flags/model"
	"github.com/rodrigorochameire-prog/Defender-sub003/internal/flags/service"
	errors2 "github.com/rodrigorochameire-prog/Defender-sub003/internal/system/errors"
)

func createTestFlag(t *testing.T, name, color string) *model.Flag {
	t.Helper()
	flag, err := service.GetFlagService().CreateFlag(model.Flag{
		Name:          name,
		Color:         color,
		Icon:          "star",
		ShowOnProfile: true,
	})
	require.NoError(t, err)
	return flag
}

func TestFlags_CreateAndUpdate(t *testing.T) {
	svc := service.GetFlagService()

	flag := createTestFlag(t, "VIP", "purple")
	assert.NotEmpty(t, flag.FlagID)
	assert.True(t, flag.IsActive)

	flag.Color = "blue"
	flag.ShowOnCalendar = true
	require.NoError(t, svc.UpdateFlag(*flag))

	fetched, err := svc.GetFlag(flag.FlagID)
	require.NoError(t, err)
	assert.Equal(t, "blue", fetched.Color)
	assert.True(t, fetched.ShowOnCalendar)
}

func TestFlags_CreateRejectsUnknownColor(t *testing.T) {
	_, err := service.GetFlagService().CreateFlag(model.Flag{Name: "Bad", Color: "chartreuse"})
	require.Error(t, err)
	var clientErr *errors2.ClientError
	assert.ErrorAs(t, err, &clientErr)
}

func TestFlags_AssignDuplicateIsConflict(t *testing.T) {
	svc := service.GetFlagService()
	flag := createTestFlag(t, "Debtor", "red")
	subjectID := "subject-" + uuid.New().String()

	assignment, err := svc.AssignFlag(subjectID, flag.FlagID, "operator-1", "unpaid invoice", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, assignment.AssignmentID)

	_, err = svc.AssignFlag(subjectID, flag.FlagID, "operator-2", "", nil)
	assert.True(t, errors2.IsConflict(err))

	subjectFlags, err := svc.GetSubjectFlags(subjectID)
	require.NoError(t, err)
	require.Len(t, subjectFlags, 1)
	assert.Equal(t, "operator-1", subjectFlags[0].AssignedBy)
}

func TestFlags_RemoveIsIdempotent(t *testing.T) {
	svc := service.GetFlagService()
	flag := createTestFlag(t, "Newcomer", "green")
	subjectID := "subject-" + uuid.New().String()

	_, err := svc.AssignFlag(subjectID, flag.FlagID, "operator-1", "", nil)
	require.NoError(t, err)

	rows, err := svc.RemoveFlag(subjectID, flag.FlagID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = svc.RemoveFlag(subjectID, flag.FlagID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

func TestFlags_ExpiredAssignmentIsInvisibleAndReassignable(t *testing.T) {
	svc := service.GetFlagService()
	flag := createTestFlag(t, "Trial", "yellow")
	subjectID := "subject-" + uuid.New().String()

	// The service refuses past expiries, so plant an already expired row directly.
	_, err := testPG.DB.Exec(
		`INSERT INTO flag_assignments (assignment_id, subject_id, flag_id, assigned_by, notes, expires_at, assigned_at)
		 VALUES ($1, $2, $3, 'operator-1', '', NOW() - INTERVAL '1 hour', NOW() - INTERVAL '2 days')`,
		uuid.New().String(), subjectID, flag.FlagID)
	require.NoError(t, err)

	subjectFlags, err := svc.GetSubjectFlags(subjectID)
	require.NoError(t, err)
	assert.Empty(t, subjectFlags)

	// Re-assignment purges the expired row instead of hitting the unique constraint.
	expiresAt := time.Now().Add(24 * time.Hour)
	_, err = svc.AssignFlag(subjectID, flag.FlagID, "operator-2", "", &expiresAt)
	require.NoError(t, err)

	subjectFlags, err = svc.GetSubjectFlags(subjectID)
	require.NoError(t, err)
	require.Len(t, subjectFlags, 1)
	assert.Equal(t, "operator-2", subjectFlags[0].AssignedBy)
}

func TestFlags_AssignRejectsPastExpiry(t *testing.T) {
	flag := createTestFlag(t, "Short", "gray")
	past := time.Now().Add(-time.Minute)

	_, err := service.GetFlagService().AssignFlag("subject-x", flag.FlagID, "operator-1", "", &past)
	require.Error(t, err)
	var clientErr *errors2.ClientError
	assert.ErrorAs(t, err, &clientErr)
}

func TestFlags_ConcurrentAssignmentYieldsOneWinner(t *testing.T) {
	svc := service.GetFlagService()
	flag := createTestFlag(t, "Contended", "orange")
	subjectID := "subject-" + uuid.New().String()

	const attempts = 8
	results := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.AssignFlag(subjectID, flag.FlagID, "operator-1", "", nil)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			assert.True(t, errors2.IsConflict(err))
		}
	}
	assert.Equal(t, 1, winners)

	subjectFlags, err := svc.GetSubjectFlags(subjectID)
	require.NoError(t, err)
	assert.Len(t, subjectFlags, 1)
}
