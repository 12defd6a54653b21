/*
Copyright © 2019 the ChemFlow authors.
This file is part of ChemFlow.

ChemFlow is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

ChemFlow is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with ChemFlow.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package chemflow holds the configuration store and error types shared by
// the species-property subsystem of the ChemFlow reacting-flow solver.
// Species thermodynamic and transport data live in package species,
// the aggregate handed to the solver in package chem, and the flattened
// copy consumed by the parallel kernels in package device.
package chemflow

// Version gives the version number.
const Version = "0.3.0"

// Universal gas constant [J/(mol K)].
const RUniversal = 8.314462618
