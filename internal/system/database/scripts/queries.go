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

package scripts

// Settings queries

var GetSettingByKey = map[string]string{
	"postgres": `SELECT setting_key, setting_value, data_type, category, label
		FROM engine_settings WHERE setting_key = $1`,
}

var GetAllSettings = map[string]string{
	"postgres": `SELECT setting_key, setting_value, data_type, category, label
		FROM engine_settings ORDER BY category, setting_key`,
}

var GetSettingsByCategory = map[string]string{
	"postgres": `SELECT setting_key, setting_value, data_type, category, label
		FROM engine_settings WHERE category = $1 ORDER BY setting_key`,
}

var UpdateSettingValue = map[string]string{
	"postgres": `UPDATE engine_settings SET setting_value = $2, updated_at = NOW() WHERE setting_key = $1`,
}

var UpsertSetting = map[string]string{
	"postgres": `INSERT INTO engine_settings (setting_key, setting_value, data_type, category, label, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (setting_key) DO UPDATE SET setting_value = EXCLUDED.setting_value,
			data_type = EXCLUDED.data_type, category = EXCLUDED.category,
			label = EXCLUDED.label, updated_at = NOW()`,
}

var SeedSetting = map[string]string{
	"postgres": `INSERT INTO engine_settings (setting_key, setting_value, data_type, category, label, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (setting_key) DO NOTHING`,
}

// Rule queries

var InsertRule = map[string]string{
	"postgres": `INSERT INTO engine_rules
		(name, priority, is_active, trigger_type, trigger_entity, trigger_field, trigger_condition,
		 trigger_value, action_type, action_config, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING rule_id`,
}

var GetRuleByID = map[string]string{
	"postgres": `SELECT rule_id, name, priority, is_active, trigger_type, trigger_entity, trigger_field,
		trigger_condition, trigger_value, action_type, action_config::text, execution_count, last_executed_at,
		created_at, updated_at FROM engine_rules WHERE rule_id = $1`,
}

var GetAllRules = map[string]string{
	"postgres": `SELECT rule_id, name, priority, is_active, trigger_type, trigger_entity, trigger_field,
		trigger_condition, trigger_value, action_type, action_config::text, execution_count, last_executed_at,
		created_at, updated_at FROM engine_rules ORDER BY priority DESC, rule_id ASC`,
}

var GetActiveRules = map[string]string{
	"postgres": `SELECT rule_id, name, priority, is_active, trigger_type, trigger_entity, trigger_field,
		trigger_condition, trigger_value, action_type, action_config::text, execution_count, last_executed_at,
		created_at, updated_at FROM engine_rules WHERE is_active = TRUE ORDER BY priority DESC, rule_id ASC`,
}

var GetActiveRulesByTrigger = map[string]string{
	"postgres": `SELECT rule_id, name, priority, is_active, trigger_type, trigger_entity, trigger_field,
		trigger_condition, trigger_value, action_type, action_config::text, execution_count, last_executed_at,
		created_at, updated_at FROM engine_rules WHERE is_active = TRUE AND trigger_type = $1
		ORDER BY priority DESC, rule_id ASC`,
}

var UpdateRule = map[string]string{
	"postgres": `UPDATE engine_rules SET
		name = $2, priority = $3, is_active = $4, trigger_type = $5, trigger_entity = $6, trigger_field = $7,
		trigger_condition = $8, trigger_value = $9, action_type = $10, action_config = $11, updated_at = NOW()
		WHERE rule_id = $1`,
}

var DeleteRule = map[string]string{
	"postgres": `DELETE FROM engine_rules WHERE rule_id = $1`,
}

var IncrementRuleExecution = map[string]string{
	"postgres": `UPDATE engine_rules SET execution_count = execution_count + 1, last_executed_at = NOW()
		WHERE rule_id = $1`,
}

// Flag queries

var InsertFlag = map[string]string{
	"postgres": `INSERT INTO subject_flags
		(flag_id, name, color, icon, description, auto_assign_field, auto_assign_operator, auto_assign_value,
		 show_on_profile, show_on_calendar, show_on_booking, show_on_reports, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())`,
}

var GetFlagByID = map[string]string{
	"postgres": `SELECT flag_id, name, color, icon, description, auto_assign_field, auto_assign_operator,
		auto_assign_value, show_on_profile, show_on_calendar, show_on_booking, show_on_reports, is_active
		FROM subject_flags WHERE flag_id = $1`,
}

var GetAllFlags = map[string]string{
	"postgres": `SELECT flag_id, name, color, icon, description, auto_assign_field, auto_assign_operator,
		auto_assign_value, show_on_profile, show_on_calendar, show_on_booking, show_on_reports, is_active
		FROM subject_flags ORDER BY name`,
}

var GetActiveFlags = map[string]string{
	"postgres": `SELECT flag_id, name, color, icon, description, auto_assign_field, auto_assign_operator,
		auto_assign_value, show_on_profile, show_on_calendar, show_on_booking, show_on_reports, is_active
		FROM subject_flags WHERE is_active = TRUE ORDER BY name`,
}

var UpdateFlag = map[string]string{
	"postgres": `UPDATE subject_flags SET
		name = $2, color = $3, icon = $4, description = $5, auto_assign_field = $6, auto_assign_operator = $7,
		auto_assign_value = $8, show_on_profile = $9, show_on_calendar = $10, show_on_booking = $11,
		show_on_reports = $12, is_active = $13 WHERE flag_id = $1`,
}

var PurgeExpiredAssignments = map[string]string{
	"postgres": `DELETE FROM flag_assignments
		WHERE subject_id = $1 AND flag_id = $2 AND expires_at IS NOT NULL AND expires_at <= NOW()`,
}

var InsertFlagAssignment = map[string]string{
	"postgres": `INSERT INTO flag_assignments
		(assignment_id, subject_id, flag_id, assigned_by, notes, expires_at, assigned_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())`,
}

var DeleteFlagAssignment = map[string]string{
	"postgres": `DELETE FROM flag_assignments WHERE subject_id = $1 AND flag_id = $2`,
}

var GetSubjectFlags = map[string]string{
	"postgres": `SELECT f.flag_id, f.name, f.color, f.icon, f.description,
		a.assigned_by, a.notes, a.expires_at, a.assigned_at
		FROM flag_assignments a
		JOIN subject_flags f ON f.flag_id = a.flag_id
		WHERE a.subject_id = $1 AND f.is_active = TRUE
		AND (a.expires_at IS NULL OR a.expires_at > NOW())
		ORDER BY a.assigned_at ASC`,
}

// Subject queries

var GetSubjectByID = map[string]string{
	"postgres": `SELECT subject_id, entity_type, fields::text, booking_blocked FROM subjects WHERE subject_id = $1`,
}

var UpsertSubject = map[string]string{
	"postgres": `INSERT INTO subjects (subject_id, entity_type, fields, booking_blocked, updated_at)
		VALUES ($1, $2, $3, FALSE, NOW())
		ON CONFLICT (subject_id) DO UPDATE SET entity_type = EXCLUDED.entity_type,
			fields = EXCLUDED.fields, updated_at = NOW()`,
}

var PatchSubjectField = map[string]string{
	"postgres": `UPDATE subjects SET fields = jsonb_set(fields, ARRAY[$2], $3::jsonb, true), updated_at = NOW()
		WHERE subject_id = $1`,
}

var SetSubjectBookingBlocked = map[string]string{
	"postgres": `UPDATE subjects SET booking_blocked = $2, updated_at = NOW() WHERE subject_id = $1`,
}

// Collaborator sink queries

var InsertAlert = map[string]string{
	"postgres": `INSERT INTO subject_alerts (alert_id, subject_id, severity, message, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())`,
}

var InsertTask = map[string]string{
	"postgres": `INSERT INTO staff_tasks (task_id, assignee_ref, description, subject_id, created_by, status, created_at)
		VALUES ($1, $2, $3, $4, $5, 'open', NOW())`,
}

var InsertNotification = map[string]string{
	"postgres": `INSERT INTO app_notifications (notification_id, recipient_ref, message, created_at)
		VALUES ($1, $2, $3, NOW())`,
}
