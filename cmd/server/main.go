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

package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/wso2/identity-profile-resolver/internal/system/client"
	"github.com/wso2/identity-profile-resolver/internal/system/config"
	"github.com/wso2/identity-profile-resolver/internal/system/constants"
	"github.com/wso2/identity-profile-resolver/internal/system/log"
	"github.com/wso2/identity-profile-resolver/internal/system/managers"
	"github.com/wso2/identity-profile-resolver/internal/system/utils"
)

func main() {
	logger := log.GetLogger()
	resolverHome := getResolverHome(logger)

	loadEnvFiles(logger, resolverHome)

	// Load the configuration file
	resolverConfig, err := config.LoadConfig(resolverHome, constants.DeploymentConfigFile)
	if err != nil {
		logger.Fatal("Failed to load the deployment configuration", log.Error(err))
	}

	// Initialize runtime configurations.
	if err := config.InitializeRuntime(resolverHome, resolverConfig); err != nil {
		logger.Fatal("Failed to initialize the resolver runtime", log.Error(err))
	}
	runtimeConfig := config.GetRuntime().Config

	// Initialize logger
	if err := log.Init(runtimeConfig.Log.LogLevel); err != nil {
		logger.Fatal("Failed to initialize the logger", log.Error(err))
	}
	logger = log.GetLogger()

	// Initialize the text generation client
	if err := client.InitTextGenerator(context.Background(), runtimeConfig.LLM); err != nil {
		logger.Fatal("Failed to initialize the text generation client", log.Error(err))
	}

	serverAddr := fmt.Sprintf("%s:%d", runtimeConfig.Addr.Host, runtimeConfig.Addr.Port)
	handler := utils.EnableCORS(utils.WithTraceID(initMultiplexer(logger)))
	ln, err := net.Listen("tcp", serverAddr)
	if err != nil {
		logger.Fatal("Failed to start the listener", log.Error(err))
	}

	logger.Info(fmt.Sprintf("Identity profile resolver started in: %s", serverAddr))

	server := &http.Server{Handler: handler}
	if err := server.Serve(ln); err != nil {
		logger.Fatal("Failed to serve requests", log.Error(err))
	}
}

// loadEnvFiles loads config/*.env and .env from the home directory. Variables already set in the
// environment win.
func loadEnvFiles(logger *log.Logger, resolverHome string) {

	envFiles, err := filepath.Glob(filepath.Join(resolverHome, "config", "*.env"))
	if err != nil {
		logger.Warn("Unable to look up .env files in the config directory", log.Error(err))
	}
	dotEnv := filepath.Join(resolverHome, ".env")
	if _, err := os.Stat(dotEnv); err == nil {
		envFiles = append(envFiles, dotEnv)
	}
	if len(envFiles) == 0 {
		logger.Debug("No .env files found")
		return
	}
	if err := godotenv.Load(envFiles...); err != nil {
		logger.Warn("Failed to load .env files", log.Error(err))
	}
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer(logger *log.Logger) *http.ServeMux {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux)

	// Register the services.
	if err := serviceManager.RegisterServices(constants.ApiBasePath); err != nil {
		logger.Error("Failed to register the services", log.Error(err))
	}

	return mux
}

func getResolverHome(logger *log.Logger) string {

	// Parse project directory from command line arguments.
	projectHomeFlag := flag.String("home", "", "Path to the profile resolver home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		logger.Info(fmt.Sprintf("Using %s from command line argument", *projectHomeFlag))
		return *projectHomeFlag
	}

	// If no command line argument is provided, use the current working directory.
	dir, err := os.Getwd()
	if err != nil {
		logger.Fatal("Failed to get current working directory", log.Error(err))
	}
	return dir
}
