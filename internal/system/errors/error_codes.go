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

package errors

const errorPrefix = "IPR-"

var (
	// Server error codes

	LLM_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Unable to initialize the text generation client.",
	}

	DB_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Unable to initialize database client.",
	}

	SOURCE_READ = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while reading the data source.",
	}

	SCHEMA_DETECTION = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error while detecting the data source schema.",
	}

	LIST_SOURCES = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Error while listing available data sources.",
	}

	MATCH_PROFILES = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while matching profiles.",
	}

	MARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Error while marshalling JSON.",
	}

	// Client error codes

	BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11001",
		Message: "Invalid body format.",
	}

	INVALID_SOURCE = ErrorMessage{
		Code:    errorPrefix + "11002",
		Message: "Invalid data source.",
	}

	BASE_PROFILE_REQUIRED = ErrorMessage{
		Code:        errorPrefix + "11003",
		Message:     "Base profile is required.",
		Description: "The request must contain a base_profile object to match against.",
	}

	INVALID_THRESHOLD = ErrorMessage{
		Code:    errorPrefix + "11004",
		Message: "Invalid match threshold.",
	}

	QUERY_REQUIRED = ErrorMessage{
		Code:        errorPrefix + "11005",
		Message:     "Query is required.",
		Description: "The request must contain a non-empty query to extract a profile from.",
	}
)
