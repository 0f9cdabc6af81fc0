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

package service

import (
	"fmt"
	"io"

	dataSourceModel "github.com/wso2/identity-profile-resolver/internal/data_source/model"
	dataSourceService "github.com/wso2/identity-profile-resolver/internal/data_source/service"
	errors2 "github.com/wso2/identity-profile-resolver/internal/system/errors"
	"github.com/wso2/identity-profile-resolver/internal/system/log"
)

// SchemaServiceInterface previews the schemas of requested sources.
type SchemaServiceInterface interface {
	DescribeSources(descriptors []dataSourceModel.SourceDescriptor) ([]dataSourceModel.SourceSchema, error)
}

// SchemaService detects schemas through an aligner that lives for one request.
type SchemaService struct {
	dataSources dataSourceService.DataSourceServiceInterface
	aligner     SchemaAlignerInterface
}

// NewSchemaService creates a schema service.
func NewSchemaService(dataSources dataSourceService.DataSourceServiceInterface,
	aligner SchemaAlignerInterface) *SchemaService {

	return &SchemaService{dataSources: dataSources, aligner: aligner}
}

// DescribeSources returns the detected fields of each known source in request order. The type and
// table are echoed as requested. Sources of an unknown type are left out.
func (s *SchemaService) DescribeSources(descriptors []dataSourceModel.SourceDescriptor) (
	[]dataSourceModel.SourceSchema, error) {

	schemas := []dataSourceModel.SourceSchema{}
	for _, descriptor := range descriptors {
		fields, known, err := s.describe(descriptor)
		if err != nil {
			return nil, err
		}
		if !known {
			log.GetLogger().Warn(fmt.Sprintf("Skipping data source: %s with unsupported type: %s",
				descriptor.Name, descriptor.Type))
			continue
		}
		schemas = append(schemas, dataSourceModel.SourceSchema{
			Name:   descriptor.Name,
			Type:   descriptor.Type,
			Fields: fields,
			Table:  descriptor.Table,
		})
	}
	return schemas, nil
}

func (s *SchemaService) describe(descriptor dataSourceModel.SourceDescriptor) ([]string, bool, error) {

	source, err := s.dataSources.BuildDataSource(descriptor)
	if err != nil {
		return nil, false, err
	}
	if source == nil {
		return nil, false, nil
	}
	if closer, ok := source.(io.Closer); ok {
		defer closer.Close()
	}

	fields, err := s.aligner.Detect(source)
	if err != nil {
		return nil, true, errors2.NewServerError(errors2.SCHEMA_DETECTION,
			fmt.Errorf("failed to detect schema of data source %s: %w", source.Name(), err))
	}
	return fields, true, nil
}
