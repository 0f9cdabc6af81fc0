/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
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

package model

import profileModel "github.com/wso2/identity-profile-resolver/internal/profile/model"

type ExtractionRequest struct {
	Query string `json:"query"`
}

type ExtractionResponse struct {
	Profile profileModel.Profile `json:"profile"`
}

// FieldVocabulary is a standard profile field and the names it is also known by.
type FieldVocabulary struct {
	Name     string
	Synonyms []string
}

// SupportedFields lists the standard profile fields extraction produces.
var SupportedFields = []FieldVocabulary{
	{Name: "name", Synonyms: []string{"name", "full_name", "first_name", "last_name", "given_name", "surname"}},
	{Name: "dob", Synonyms: []string{"dob", "date_of_birth", "birth_date", "birthdate", "born"}},
	{Name: "id", Synonyms: []string{"id", "customer_id", "user_id", "account_id", "identification", "identifier"}},
	{Name: "phone", Synonyms: []string{"phone", "phone_number", "mobile", "cell", "telephone", "contact"}},
	{Name: "email", Synonyms: []string{"email", "email_address", "mail", "e_mail"}},
	{Name: "address", Synonyms: []string{"address", "location", "residence", "home", "city", "state", "country"}},
	{Name: "bank_id", Synonyms: []string{"bank_id", "bank_account", "account_number", "banking_id"}},
	{Name: "passport", Synonyms: []string{"passport", "passport_number", "passport_id"}},
	{Name: "ssn", Synonyms: []string{"ssn", "social_security", "social_security_number"}},
	{Name: "nationality", Synonyms: []string{"nationality", "citizenship", "country_of_birth"}},
	{Name: "occupation", Synonyms: []string{"occupation", "job", "profession", "work", "employment"}},
	{Name: "company", Synonyms: []string{"company", "employer", "organization", "firm", "workplace"}},
}
