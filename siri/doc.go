// Package siri defines SIRI (Service Interface for Real-time Information) data types.
//
// SIRI is a European standard (CEN/TS 15531) for real-time public transport
// information. Only the VehicleMonitoring (VM) delivery is modelled: one
// VehicleActivity per tracked device. All types carry JSON tags; XML is
// written by the formatter package.
package siri
