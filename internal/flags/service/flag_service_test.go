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

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	model "github.com/rodrigorochameire-prog/Defender-sub003/internal/flags/model"
	errors2 "github.com/rodrigorochameire-prog/Defender-sub003/internal/system/errors"
)

type FlagValidationTestSuite struct {
	suite.Suite
	service *FlagService
}

func TestFlagValidationTestSuite(t *testing.T) {
	suite.Run(t, new(FlagValidationTestSuite))
}

func (s *FlagValidationTestSuite) SetupTest() {
	s.service = &FlagService{}
}

func validFlag() model.Flag {
	return model.Flag{
		Name:          "VIP",
		Color:         "purple",
		Icon:          "star",
		ShowOnProfile: true,
	}
}

func (s *FlagValidationTestSuite) TestValidFlagPassesValidation() {
	s.NoError(s.service.validateFlag(validFlag()))
}

func (s *FlagValidationTestSuite) TestMissingNameRejected() {

	flag := validFlag()
	flag.Name = ""

	err := s.service.validateFlag(flag)
	s.Require().Error(err)
	s.assertCode(err, errors2.FLAG_VALIDATION.Code)
}

func (s *FlagValidationTestSuite) TestColorOutsidePaletteRejected() {

	flag := validFlag()
	flag.Color = "chartreuse"

	err := s.service.validateFlag(flag)
	s.Require().Error(err)
	s.assertCode(err, errors2.FLAG_VALIDATION.Code)
}

func (s *FlagValidationTestSuite) TestAutoAssignNeedsBothFieldAndOperator() {

	flag := validFlag()
	flag.AutoAssignField = "balance"

	err := s.service.validateFlag(flag)
	s.Require().Error(err)
	s.assertCode(err, errors2.FLAG_VALIDATION.Code)
}

func (s *FlagValidationTestSuite) TestAutoAssignUnknownOperatorRejected() {

	flag := validFlag()
	flag.AutoAssignField = "balance"
	flag.AutoAssignOperator = "approximately"

	err := s.service.validateFlag(flag)
	s.Require().Error(err)
	s.assertCode(err, errors2.UNKNOWN_OPERATOR.Code)
}

func (s *FlagValidationTestSuite) TestAutoAssignWithKnownOperatorAccepted() {

	flag := validFlag()
	flag.AutoAssignField = "balance"
	flag.AutoAssignOperator = "less_than"
	flag.AutoAssignValue = "0"

	s.NoError(s.service.validateFlag(flag))
}

func (s *FlagValidationTestSuite) TestAssignRequiresSubjectAndFlag() {

	_, err := s.service.AssignFlag("", "flag-1", "operator-1", "", nil)
	s.Require().Error(err)
	s.assertCode(err, errors2.FLAG_VALIDATION.Code)

	_, err = s.service.AssignFlag("subject-1", "", "operator-1", "", nil)
	s.Require().Error(err)
	s.assertCode(err, errors2.FLAG_VALIDATION.Code)
}

func (s *FlagValidationTestSuite) TestAssignRejectsPastExpiry() {

	past := time.Now().Add(-time.Hour)
	_, err := s.service.AssignFlag("subject-1", "flag-1", "operator-1", "", &past)

	s.Require().Error(err)
	s.assertCode(err, errors2.FLAG_VALIDATION.Code)
}

func (s *FlagValidationTestSuite) assertCode(err error, code string) {
	clientErr, ok := err.(*errors2.ClientError)
	s.Require().True(ok, "expected a client error, got %T", err)
	s.Equal(code, clientErr.Code)
}
