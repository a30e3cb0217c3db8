// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package semanticversion

import "fmt"

func Example_semanticVersionFromString() {
	for _, v := range []string{"1.2.3", "v0.10.0", "1.2", "1.x.3", "1.-2.3"} {
		sv, err := SemanticVersionFromString(v)
		fmt.Printf("%v|%v\n", sv, err)
	}

	var none *SemanticVersion
	fmt.Println(none.String())

	// Output:
	// 1.2.3|<nil>
	// 0.10.0|<nil>
	// 0.0.0|Invalid semantic version: 1.2
	// 0.0.0|Failed to parse version 1.x.3, part x is not a number
	// 0.0.0|Failed to parse version 1.-2.3, part -2 is not a number
	// ?.?.?
}

func Example_release() {
	fmt.Println(Release("l1r-converter", "v1.4.0"))
	fmt.Println(Release("l1r-convert", "dev"))

	// Output:
	// l1r-converter@1.4.0
	// l1r-convert@?.?.?
}
