// Copyright (C) 2026 the mdpkit authors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package problems ships ready-built factored MDPs with matching solver
// configurations. They serve as CLI demos, acceptance fixtures, and worked
// examples of both transition calling conventions: the 1-D grid world uses
// the sparse T(s,a) distribution form, the inventory problem the dense
// T(s,a,s') scalar form.
package problems
